package integration

import (
	client "github.com/abraham-leal/ccloud-schema-serde/cmd/internals"
	"github.com/abraham-leal/ccloud-schema-serde/cmd/testingUtils"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"log"
	"os"
	"path/filepath"
	"testing"
)

var kafkaContainer testcontainers.Container
var schemaRegistryContainer testcontainers.Container
var testClient *client.SchemaRegistryClient
var testSerde *client.Serde

var avroSubjectSchema = "{\"type\": \"record\",\"namespace\": \"com.mycorp.mynamespace\",\"name\": \"value_serde\",\"fields\": [{\"name\": \"this\",\"type\":\"int\"},{\"name\": \"that\",\"type\": \"double\"},{\"name\": \"too\",\"type\": \"string\"}]}"

var protoSubjectSchema = `syntax = "proto3";
package com.mycorp.mynamespace;

message Reading {
  int64 this = 1;
  double that = 2;
  string too = 3;
}
`

var jsonSubjectSchema = `{
  "type": "object",
  "properties": {
    "this": {"type": "integer"},
    "that": {"type": "number"},
    "too": {"type": "string"}
  },
  "required": ["this", "that", "too"]
}`

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	tearDown()
	os.Exit(code)
}

func setup() {
	kafkaContainer, schemaRegistryContainer = testingUtils.GetBaseInfra("serdetest")
	client.HttpCallTimeout = 60

	testClient = client.NewSchemaRegistryClient(testingUtils.GetRegistryURL(schemaRegistryContainer), "", "")
	if !testClient.IsReachable() {
		panic("Could not find Schema Registry")
	}
	testSerde = client.NewSerde(testClient)
}

func tearDown() {
	testingUtils.CheckFail(kafkaContainer.Terminate(testingUtils.Ctx), "Could not terminate Kafka")
	testingUtils.CheckFail(schemaRegistryContainer.Terminate(testingUtils.Ctx), "Could not terminate Schema Registry")
}

func TestAvroRegisterEncodeDecode(t *testing.T) {
	log.Println("Test Avro Register/Encode/Decode!")

	registered, err := testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Avro, Schema: avroSubjectSchema}, client.RegisterOptions{})
	assert.NoError(t, err)
	assert.True(t, registered.Id > 0)

	payload := map[string]interface{}{"this": 1, "that": float64(2.5), "too": "someValue"}

	framed, err := testSerde.Encode(testingUtils.Ctx, registered.Id, payload)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x0), framed[0])

	// A fresh serde has an empty cache, so this decode exercises the fetch path
	freshSerde := client.NewSerde(testClient)
	decoded, err := freshSerde.Decode(testingUtils.Ctx, framed, client.DecodeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"this": 1, "that": float64(2.5), "too": "someValue"}, decoded)
}

func TestProtobufRegisterEncodeDecode(t *testing.T) {
	log.Println("Test Protobuf Register/Encode/Decode!")

	registered, err := testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Protobuf, Schema: protoSubjectSchema},
		client.RegisterOptions{Subject: "readings-value"})
	assert.NoError(t, err)

	payload := map[string]interface{}{"this": float64(1), "that": float64(2.5), "too": "someValue"}

	framed, err := testSerde.Encode(testingUtils.Ctx, registered.Id, payload)
	assert.NoError(t, err)

	freshSerde := client.NewSerde(testClient)
	decoded, err := freshSerde.Decode(testingUtils.Ctx, framed, client.DecodeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"this": "1", "that": float64(2.5), "too": "someValue"}, decoded)
}

func TestJsonRegisterEncodeDecode(t *testing.T) {
	log.Println("Test Json Register/Encode/Decode!")

	registered, err := testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Json, Schema: jsonSubjectSchema},
		client.RegisterOptions{Subject: "documents-value"})
	assert.NoError(t, err)

	payload := map[string]interface{}{"this": float64(1), "that": float64(2.5), "too": "someValue"}

	framed, err := testSerde.Encode(testingUtils.Ctx, registered.Id, payload)
	assert.NoError(t, err)

	freshSerde := client.NewSerde(testClient)
	decoded, err := freshSerde.Decode(testingUtils.Ctx, framed, client.DecodeOptions{})
	assert.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCompatibilityOverride(t *testing.T) {
	log.Println("Test Compatibility Override!")

	registered, err := testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Json, Schema: jsonSubjectSchema},
		client.RegisterOptions{Subject: "compat-value", Compatibility: "NONE"})
	assert.NoError(t, err)
	assert.True(t, registered.Id > 0)

	level, err := testClient.GetCompatibility(testingUtils.Ctx, "compat-value")
	assert.NoError(t, err)
	assert.Equal(t, "NONE", level)

	// A conflicting override on the same subject is rejected before any write
	_, err = testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Json, Schema: `{"type": "object"}`},
		client.RegisterOptions{Subject: "compat-value", Compatibility: "FULL"})

	var compatErr *client.CompatibilityError
	assert.ErrorAs(t, err, &compatErr)
}

func TestExportSubjectToFS(t *testing.T) {
	log.Println("Test Export Subject To FS!")

	registered, err := testSerde.Register(testingUtils.Ctx,
		client.ConfluentSchema{SType: client.Avro, Schema: avroSubjectSchema}, client.RegisterOptions{})
	assert.NoError(t, err)
	assert.True(t, registered.Id > 0)

	tempDir := t.TempDir()
	err = client.ExportSubjectToFS(testClient, "com.mycorp.mynamespace.value_serde", tempDir, tempDir)
	assert.NoError(t, err)

	written, err := filepath.Glob(filepath.Join(tempDir, "com.mycorp.mynamespace.value_serde-*.avsc"))
	assert.NoError(t, err)
	assert.True(t, len(written) >= 1)
}
