package client

//
// avro.go
//

import (
	"github.com/hamba/avro/v2"
)

// AvroAdapter handles AVRO schemas through hamba/avro. Avro schemas do not
// compose through registry references, so the reference capabilities are
// no-ops.
type AvroAdapter struct{}

func (AvroAdapter) Compile(schema ConfluentSchema, _ CompileOptions) (Codec, error) {
	parsed, err := avro.Parse(schema.Schema)
	if err != nil {
		return nil, &SchemaCompilationError{SType: Avro, Err: err}
	}
	return &avroCodec{schema: parsed}, nil
}

func (AvroAdapter) Validate(codec Codec) error {
	ac, ok := codec.(*avroCodec)
	if !ok {
		return &InvalidSchemaError{SType: Avro, Reason: "codec was not compiled by the AVRO adapter"}
	}
	record, ok := ac.schema.(*avro.RecordSchema)
	if !ok {
		return &InvalidSchemaError{SType: Avro, Reason: "top-level type must be a named record"}
	}
	if record.Name() == "" {
		return &InvalidSchemaError{SType: Avro, Reason: "top-level record must be named"}
	}
	return nil
}

func (AvroAdapter) DeriveSubject(schema ConfluentSchema, separator string) (string, error) {
	parsed, err := avro.Parse(schema.Schema)
	if err != nil {
		return "", &SchemaCompilationError{SType: Avro, Err: err}
	}
	record, ok := parsed.(*avro.RecordSchema)
	if !ok {
		return "", &InvalidSchemaError{SType: Avro, Reason: "top-level type must be a named record"}
	}
	if record.Namespace() == "" {
		return "", &MissingMetadataError{Field: "namespace"}
	}
	return record.Namespace() + separator + record.Name(), nil
}

func (AvroAdapter) ToConfluentSchema(response SchemaResponse) ConfluentSchema {
	return ConfluentSchema{SType: Avro, Schema: response.Schema}
}

func (AvroAdapter) ExtractReferences(_ ConfluentSchema) []SchemaReference {
	return nil
}

func (AvroAdapter) ApplyReferences(opts CompileOptions, _ map[string]string) CompileOptions {
	return opts
}

type avroCodec struct {
	schema avro.Schema
}

func (c *avroCodec) Encode(value interface{}) ([]byte, error) {
	data, err := avro.Marshal(c.schema, value)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}

func (c *avroCodec) Decode(data []byte) (interface{}, error) {
	var value interface{}
	if err := avro.Unmarshal(c.schema, data, &value); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return value, nil
}

// DecodeWithReader reads data written with this codec's schema under the
// provided reader schema, applying standard writer/reader resolution:
// fields only the reader declares take their defaults, fields the reader
// omits are dropped.
func (c *avroCodec) DecodeWithReader(data []byte, reader ConfluentSchema) (interface{}, error) {
	readerSchema, err := avro.Parse(reader.Schema)
	if err != nil {
		return nil, &SchemaCompilationError{SType: Avro, Err: err}
	}

	resolved, err := avro.NewSchemaCompatibility().Resolve(readerSchema, c.schema)
	if err != nil {
		return nil, &DecodingError{Err: err}
	}

	var value interface{}
	if err := avro.Unmarshal(resolved, data, &value); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return value, nil
}
