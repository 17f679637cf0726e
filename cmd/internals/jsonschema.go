package client

//
// jsonschema.go
//

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Registered JSON schemas are compiled under a synthetic resource URL;
// their $ref targets resolve against the reference names declared on the
// schema.
const jsonEntryName = "schema.json"

// JsonAdapter handles JSON schemas through santhosh-tekuri/jsonschema.
// Payloads are JSON documents validated against the compiled schema on
// both encode and decode.
type JsonAdapter struct{}

func (JsonAdapter) Compile(schema ConfluentSchema, opts CompileOptions) (Codec, error) {
	compiler := jsonschema.NewCompiler()

	document, err := jsonschema.UnmarshalJSON(strings.NewReader(schema.Schema))
	if err != nil {
		return nil, &SchemaCompilationError{SType: Json, Err: err}
	}
	if err := compiler.AddResource(jsonEntryName, document); err != nil {
		return nil, &SchemaCompilationError{SType: Json, Err: err}
	}

	for name, text := range opts.ReferredSchemas {
		referred, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
		if err != nil {
			return nil, &SchemaCompilationError{SType: Json, Err: err}
		}
		if err := compiler.AddResource(name, referred); err != nil {
			return nil, &SchemaCompilationError{SType: Json, Err: err}
		}
	}

	compiled, err := compiler.Compile(jsonEntryName)
	if err != nil {
		return nil, &SchemaCompilationError{SType: Json, Err: err}
	}
	return &jsonCodec{schema: compiled}, nil
}

func (JsonAdapter) Validate(codec Codec) error {
	if _, ok := codec.(*jsonCodec); !ok {
		return &InvalidSchemaError{SType: Json, Reason: "codec was not compiled by the JSON adapter"}
	}
	return nil
}

func (JsonAdapter) DeriveSubject(_ ConfluentSchema, _ string) (string, error) {
	return "", &ArgumentError{Name: "subject", Reason: "a subject must be provided when registering JSON schemas"}
}

func (JsonAdapter) ToConfluentSchema(response SchemaResponse) ConfluentSchema {
	return ConfluentSchema{SType: Json, Schema: response.Schema, References: response.References}
}

func (JsonAdapter) ExtractReferences(schema ConfluentSchema) []SchemaReference {
	return schema.References
}

func (JsonAdapter) ApplyReferences(opts CompileOptions, referred map[string]string) CompileOptions {
	if opts.ReferredSchemas == nil {
		opts.ReferredSchemas = map[string]string{}
	}
	for name, text := range referred {
		opts.ReferredSchemas[name] = text
	}
	return opts
}

type jsonCodec struct {
	schema *jsonschema.Schema
}

func (c *jsonCodec) Encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	// Validation runs over decoded JSON types so struct payloads behave
	// the same as map payloads
	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, &EncodingError{Err: err}
	}
	if err := c.schema.Validate(document); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}

func (c *jsonCodec) Decode(data []byte) (interface{}, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &DecodingError{Err: err}
	}
	if err := c.schema.Validate(value); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return value, nil
}
