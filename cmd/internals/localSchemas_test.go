package client

//
// localSchemas_test.go
//

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSchemaFileGuessesTypeFromExtension(t *testing.T) {
	tempDir := t.TempDir()

	cases := map[string]SchemaType{
		"schema.avsc":  Avro,
		"schema.proto": Protobuf,
		"schema.json":  Json,
	}

	for filename, expectedType := range cases {
		path := filepath.Join(tempDir, filename)
		assert.NoError(t, os.WriteFile(path, []byte("schema contents"), 0644))

		loaded, err := LoadSchemaFile(path, "")
		assert.NoError(t, err)
		assert.Equal(t, expectedType, loaded.SType)
		assert.Equal(t, "schema contents", loaded.Schema)
	}
}

func TestLoadSchemaFileDeclaredTypeWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.txt")
	assert.NoError(t, os.WriteFile(path, []byte(personJsonSchema), 0644))

	loaded, err := LoadSchemaFile(path, "json")
	assert.NoError(t, err)
	assert.Equal(t, Json, loaded.SType)
}

func TestLoadSchemaFileMissing(t *testing.T) {
	_, err := LoadSchemaFile(filepath.Join(t.TempDir(), "nope.avsc"), "")
	assert.Error(t, err)
}

func TestWriteSchemaLocally(t *testing.T) {
	tempDir := t.TempDir()

	record := SchemaRecord{
		Subject: "testSubject",
		Schema:  simpleAvroSchema,
		SType:   Avro.String(),
		Version: 2,
		Id:      10001,
	}

	assert.NoError(t, WriteSchemaLocally(record, tempDir))

	written, err := os.ReadFile(filepath.Join(tempDir, "testSubject-2-10001.avsc"))
	assert.NoError(t, err)
	assert.Equal(t, simpleAvroSchema, string(written))
}

func TestCheckPathDefaultsToBackupFolder(t *testing.T) {
	tempDir := t.TempDir()

	resolved := CheckPath("", tempDir)

	assert.Equal(t, filepath.Join(tempDir, "SchemaRegistryBackup"), resolved)
	info, err := os.Stat(resolved)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCheckPathRelative(t *testing.T) {
	tempDir := t.TempDir()
	assert.NoError(t, os.Mkdir(filepath.Join(tempDir, "schemas"), 0755))

	resolved := CheckPath("schemas", tempDir)

	assert.Equal(t, filepath.Join(tempDir, "schemas"), resolved)
}
