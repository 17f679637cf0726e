package client

//
// localSchemas.go
//

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadSchemaFile reads raw schema text from disk and guesses the schema
// type from the file extension unless one is given.
func LoadSchemaFile(path string, declaredType string) (ConfluentSchema, error) {
	currentPath, _ := os.Getwd()
	if !filepath.IsAbs(path) {
		path = filepath.Join(currentPath, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ConfluentSchema{}, err
	}

	sType := SchemaType(strings.ToUpper(declaredType))
	if declaredType == "" {
		switch strings.TrimPrefix(filepath.Ext(path), ".") {
		case "proto":
			sType = Protobuf
		case "json":
			sType = Json
		default:
			sType = Avro
		}
	}

	return ConfluentSchema{SType: sType, Schema: string(raw)}, nil
}

// WriteSchemaLocally writes the provided schema in the given path, named
// subject-version-id with the extension of its type
func WriteSchemaLocally(record SchemaRecord, pathToWrite string) error {
	filename := fmt.Sprintf("%s-%d-%d.%s", record.Subject, record.Version, record.Id, SchemaType(record.SType).Extension())
	f, err := os.Create(filepath.Join(pathToWrite, filename))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.WriteString(record.Schema); err != nil {
		return err
	}
	return f.Sync()
}

// ExportSubjectToFS writes every allowed version of a subject to the given
// path.
func ExportSubjectToFS(srcClient *SchemaRegistryClient, subject string, definedPath string, workingDirectory string) error {
	if !checkSubjectIsAllowed(subject) {
		return fmt.Errorf("subject %s is filtered out by the allow/disallow lists", subject)
	}

	definedPath = CheckPath(definedPath, workingDirectory)

	versions, err := srcClient.GetVersions(context.Background(), subject)
	if err != nil {
		return err
	}

	log.Printf("Writing schemas for %s from %s to path %s", subject, srcClient.SRUrl, definedPath)
	for _, version := range versions {
		record, err := srcClient.GetSchema(context.Background(), subject, version)
		if err != nil {
			return err
		}

		log.Printf("Writing schema: %s with version: %d and ID: %d",
			record.Subject, record.Version, record.Id)
		if err := WriteSchemaLocally(record, definedPath); err != nil {
			return err
		}
	}
	return nil
}

// Returns a valid local FS path to write the schemas to
func CheckPath(definedPath string, workingDirectory string) string {

	currentPath := filepath.Clean(workingDirectory)

	if definedPath == "" {
		definedPath = filepath.Join(currentPath, "SchemaRegistryBackup")
		log.Println("Path not defined, using local folder SchemaRegistryBackup")
		_ = os.Mkdir(definedPath, 0755)
		return definedPath
	} else {
		if filepath.IsAbs(definedPath) {
			if _, err := os.Stat(definedPath); os.IsNotExist(err) {
				log.Println("Path: " + definedPath)
				log.Fatalln("The directory specified does not exist.")
			}
		} else {
			definedPath = filepath.Join(currentPath, definedPath)
			_, err := os.Stat(definedPath)
			if os.IsNotExist(err) {
				log.Println("Path: " + definedPath)
				log.Fatalln("The directory specified does not exist.")
			}
		}
		return definedPath
	}
}
