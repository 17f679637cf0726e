package main

//
// ccloud-schema-serde.go
//

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	client "github.com/abraham-leal/ccloud-schema-serde/cmd/internals"
)

func main() {

	client.GetFlags()

	srClient := client.NewSchemaRegistryClient(client.SRUrl, client.SRKey, client.SRSecret)
	if !srClient.IsReachable() {
		log.Println("Could not reach the registry. Possible bad credentials?")
		os.Exit(0)
	}

	serde := client.NewSerde(srClient)
	ctx := context.Background()

	switch client.ThisRun {
	case client.REGISTER:
		schema, err := client.LoadSchemaFile(client.SchemaPath, client.SchemaTypeFlag)
		if err != nil {
			log.Fatalln(err)
		}

		registered, err := serde.Register(ctx, schema, client.RegisterOptions{Subject: client.SubjectFlag})
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Registered schema with ID: %d", registered.Id)

	case client.FETCH:
		response, err := srClient.GetSchemaByID(ctx, client.SchemaIDFlag)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println(response.Schema)

	case client.DECODE:
		framed, err := os.ReadFile(client.MessagePath)
		if err != nil {
			log.Fatalln(err)
		}

		value, err := serde.Decode(ctx, framed, client.DecodeOptions{})
		if err != nil {
			log.Fatalln(err)
		}

		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println(string(pretty))

	case client.LIST:
		subjects, err := srClient.GetSubjects(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		for _, subject := range subjects {
			versions, err := srClient.GetVersions(ctx, subject)
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Printf("%s: %v\n", subject, versions)
		}

	case client.EXPORT:
		workingDirectory, _ := os.Getwd()
		if err := client.ExportSubjectToFS(srClient, client.SubjectFlag, client.PathToWrite, workingDirectory); err != nil {
			log.Fatalln(err)
		}
	}

	log.Println("-----------------------------------------------")
	log.Println("All Done! Thanks for using ccloud-schema-serde!")

}
