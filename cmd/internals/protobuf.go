package client

//
// protobuf.go
//

import (
	"context"
	"encoding/json"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Registered proto schemas are compiled under a synthetic file name; their
// imports resolve against the reference names declared on the schema.
const protoEntryName = "schema.proto"

// ProtobufAdapter handles PROTOBUF schemas by compiling raw .proto text
// into file descriptors and encoding payloads as dynamic messages. The
// first top-level message of the compiled file is the payload type.
type ProtobufAdapter struct{}

func (ProtobufAdapter) Compile(schema ConfluentSchema, opts CompileOptions) (Codec, error) {
	sources := map[string]string{protoEntryName: schema.Schema}
	for name, text := range opts.ReferredSchemas {
		sources[name] = text
	}

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
	}

	files, err := compiler.Compile(context.Background(), protoEntryName)
	if err != nil {
		return nil, &SchemaCompilationError{SType: Protobuf, Err: err}
	}

	return &protobufCodec{descriptor: files[0]}, nil
}

func (ProtobufAdapter) Validate(codec Codec) error {
	pc, ok := codec.(*protobufCodec)
	if !ok {
		return &InvalidSchemaError{SType: Protobuf, Reason: "codec was not compiled by the PROTOBUF adapter"}
	}
	if pc.descriptor.Messages().Len() == 0 {
		return &InvalidSchemaError{SType: Protobuf, Reason: "schema must declare at least one top-level message"}
	}
	return nil
}

func (ProtobufAdapter) DeriveSubject(_ ConfluentSchema, _ string) (string, error) {
	return "", &ArgumentError{Name: "subject", Reason: "a subject must be provided when registering PROTOBUF schemas"}
}

func (ProtobufAdapter) ToConfluentSchema(response SchemaResponse) ConfluentSchema {
	return ConfluentSchema{SType: Protobuf, Schema: response.Schema, References: response.References}
}

func (ProtobufAdapter) ExtractReferences(schema ConfluentSchema) []SchemaReference {
	return schema.References
}

func (ProtobufAdapter) ApplyReferences(opts CompileOptions, referred map[string]string) CompileOptions {
	if opts.ReferredSchemas == nil {
		opts.ReferredSchemas = map[string]string{}
	}
	for name, text := range referred {
		opts.ReferredSchemas[name] = text
	}
	return opts
}

type protobufCodec struct {
	descriptor protoreflect.FileDescriptor
}

func (c *protobufCodec) payloadDescriptor() protoreflect.MessageDescriptor {
	return c.descriptor.Messages().Get(0)
}

// Encode accepts any JSON-marshalable value shaped like the payload
// message and produces proto wire bytes.
func (c *protobufCodec) Encode(value interface{}) ([]byte, error) {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	message := dynamicpb.NewMessage(c.payloadDescriptor())
	if err := protojson.Unmarshal(jsonBytes, message); err != nil {
		return nil, &EncodingError{Err: err}
	}

	data, err := proto.Marshal(message)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return data, nil
}

func (c *protobufCodec) Decode(data []byte) (interface{}, error) {
	message := dynamicpb.NewMessage(c.payloadDescriptor())
	if err := proto.Unmarshal(data, message); err != nil {
		return nil, &DecodingError{Err: err}
	}

	jsonBytes, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(message)
	if err != nil {
		return nil, &DecodingError{Err: err}
	}

	var value interface{}
	if err := json.Unmarshal(jsonBytes, &value); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return value, nil
}
