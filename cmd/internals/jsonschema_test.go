package client

//
// jsonschema_test.go
//

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var personJsonSchema = `{
  "type": "object",
  "properties": {
    "fullName": {"type": "string"}
  },
  "required": ["fullName"],
  "additionalProperties": false
}`

func TestJsonCompileRejectsMalformedSchema(t *testing.T) {
	_, err := JsonAdapter{}.Compile(ConfluentSchema{SType: Json, Schema: `{"type": `}, CompileOptions{})

	var compilationErr *SchemaCompilationError
	assert.ErrorAs(t, err, &compilationErr)
}

func TestJsonRoundTrip(t *testing.T) {
	codec, err := JsonAdapter{}.Compile(ConfluentSchema{SType: Json, Schema: personJsonSchema}, CompileOptions{})
	assert.NoError(t, err)
	assert.NoError(t, JsonAdapter{}.Validate(codec))

	payload := map[string]interface{}{"fullName": "John Doe"}

	encoded, err := codec.Encode(payload)
	assert.NoError(t, err)

	decoded, err := codec.Decode(encoded)
	assert.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestJsonEncodeRejectsNonConformingPayload(t *testing.T) {
	codec, err := JsonAdapter{}.Compile(ConfluentSchema{SType: Json, Schema: personJsonSchema}, CompileOptions{})
	assert.NoError(t, err)

	var encodingErr *EncodingError

	_, err = codec.Encode(map[string]interface{}{"fullName": 42})
	assert.ErrorAs(t, err, &encodingErr)

	_, err = codec.Encode(map[string]interface{}{"unexpected": "field"})
	assert.ErrorAs(t, err, &encodingErr)
}

func TestJsonDecodeValidatesPayload(t *testing.T) {
	codec, err := JsonAdapter{}.Compile(ConfluentSchema{SType: Json, Schema: personJsonSchema}, CompileOptions{})
	assert.NoError(t, err)

	var decodingErr *DecodingError

	_, err = codec.Decode([]byte(`{"fullName": 42}`))
	assert.ErrorAs(t, err, &decodingErr)

	_, err = codec.Decode([]byte(`not json at all`))
	assert.ErrorAs(t, err, &decodingErr)
}

func TestJsonCompileWithReferences(t *testing.T) {
	entrySchema := `{
  "type": "object",
  "properties": {
    "fullName": {"type": "string"},
    "address": {"$ref": "address.json"}
  }
}`
	addressSchema := `{
  "type": "object",
  "properties": {
    "city": {"type": "string"}
  },
  "required": ["city"]
}`

	schema := ConfluentSchema{
		SType:      Json,
		Schema:     entrySchema,
		References: []SchemaReference{{Name: "address.json", Subject: "address", Version: 1}},
	}

	opts := JsonAdapter{}.ApplyReferences(CompileOptions{}, map[string]string{"address.json": addressSchema})
	codec, err := JsonAdapter{}.Compile(schema, opts)
	assert.NoError(t, err)

	payload := map[string]interface{}{
		"fullName": "John Doe",
		"address":  map[string]interface{}{"city": "Austin"},
	}
	encoded, err := codec.Encode(payload)
	assert.NoError(t, err)

	decoded, err := codec.Decode(encoded)
	assert.NoError(t, err)
	assert.Equal(t, payload, decoded)

	// The referenced schema is enforced too
	var encodingErr *EncodingError
	_, err = codec.Encode(map[string]interface{}{
		"fullName": "John Doe",
		"address":  map[string]interface{}{},
	})
	assert.ErrorAs(t, err, &encodingErr)
}

func TestJsonSubjectMustBeExplicit(t *testing.T) {
	_, err := JsonAdapter{}.DeriveSubject(ConfluentSchema{SType: Json, Schema: personJsonSchema}, ".")

	var argumentErr *ArgumentError
	assert.ErrorAs(t, err, &argumentErr)
}
