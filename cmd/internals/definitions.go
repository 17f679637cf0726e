package client

//
// definitions.go
//

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ConfluentSchema is the raw source of truth for a schema: its registry
// type tag, its text, and the references it declares on other subjects.
// It is never mutated after construction.
type ConfluentSchema struct {
	SType      SchemaType        `json:"schemaType"`
	Schema     string            `json:"schema"`
	References []SchemaReference `json:"references,omitempty"`
}

// SchemaReference is a named pointer to a previously registered schema.
// Only PROTOBUF and JSON schemas compose through references.
type SchemaReference struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Version int    `json:"version"`
}

// RegisteredSchema carries the identifier minted by the registry.
type RegisteredSchema struct {
	Id int `json:"id"`
}

// SchemaResponse is the registry's answer to a fetch by id, and the source
// of truth for decode-time compilation.
type SchemaResponse struct {
	Id         int               `json:"id"`
	Schema     string            `json:"schema"`
	SType      SchemaType        `json:"schemaType"`
	References []SchemaReference `json:"references"`
}

// The registry omits schemaType for AVRO schemas
func (s SchemaResponse) setTypeIfEmpty() SchemaResponse {
	if s.SType == "" {
		s.SType = Avro
	}
	return s
}

type SchemaToRegister struct {
	Schema     string            `json:"schema"`
	SType      SchemaType        `json:"schemaType"`
	References []SchemaReference `json:"references,omitempty"`
}

type SchemaRecord struct {
	Subject string `json:"subject"`
	Schema  string `json:"schema"`
	SType   string `json:"schemaType"`
	Version int64  `json:"version"`
	Id      int64  `json:"id"`
}

// Constructor to assure Type-less schemas get treated as Avro
func (srs SchemaRecord) setTypeIfEmpty() SchemaRecord {
	if srs.SType == "" {
		srs.SType = Avro.String()
	}
	return srs
}

type CompatRecord struct {
	Compatibility string `json:"compatibility"`
}

// The /config read endpoint reports the setting under a different key than
// the write endpoint accepts
type ConfigRecord struct {
	CompatibilityLevel string `json:"compatibilityLevel"`
}

type SubjectVersion struct {
	Subject string `json:"subject"`
	Version int64  `json:"version"`
}

type SubjectWithVersions struct {
	Subject  string
	Versions []int64
}

// Codec is the executable artifact an adapter compiles from schema text.
// A Codec is owned by the adapter that produced it and is safe for
// concurrent use once built.
type Codec interface {
	Encode(value interface{}) ([]byte, error)
	Decode(data []byte) (interface{}, error)
}

// Codecs for formats with writer/reader resolution additionally implement
// decoding under an explicit reader schema.
type readerResolvingCodec interface {
	DecodeWithReader(data []byte, reader ConfluentSchema) (interface{}, error)
}

// CompileOptions carries format-opaque knobs into Compile. ReferredSchemas
// maps a reference name (proto import path, JSON $ref / $id) to the
// resolved schema text it should compile against.
type CompileOptions struct {
	ReferredSchemas map[string]string
}

/*
Any struct that implements this interface handles one schema family for
registration, compilation and subject derivation. The orchestrator never
branches on schema type beyond selecting which adapter to invoke.
*/
type SchemaAdapter interface {
	// Compile parses schema text into an executable Codec.
	Compile(schema ConfluentSchema, opts CompileOptions) (Codec, error)
	// Validate enforces the structural requirements of the format on a
	// compiled schema.
	Validate(codec Codec) error
	// DeriveSubject computes the canonical subject for a schema, joining
	// its structural metadata with the given separator.
	DeriveSubject(schema ConfluentSchema, separator string) (string, error)
	// ToConfluentSchema reconstructs a normalized schema from a registry
	// fetch response.
	ToConfluentSchema(response SchemaResponse) ConfluentSchema
	// ExtractReferences lists the cross-schema dependencies the schema
	// declares, or nil when the format does not compose.
	ExtractReferences(schema ConfluentSchema) []SchemaReference
	// ApplyReferences folds resolved referenced schema text into compile
	// options so imported types resolve.
	ApplyReferences(opts CompileOptions, referred map[string]string) CompileOptions
}

// AdapterFor selects the adapter handling the given schema type.
func AdapterFor(sType SchemaType) (SchemaAdapter, error) {
	switch sType {
	case Avro:
		return AvroAdapter{}, nil
	case Protobuf:
		return ProtobufAdapter{}, nil
	case Json:
		return JsonAdapter{}, nil
	default:
		return nil, &ArgumentError{Name: "schemaType", Reason: fmt.Sprintf("unknown schema type %q", sType)}
	}
}

type StringArrayFlag map[string]bool

func (i *StringArrayFlag) String() string {
	return fmt.Sprintln(*i)
}

func (i *StringArrayFlag) Set(value string) error {
	currentPath, _ := os.Getwd()

	if strings.LastIndexAny(value, "/.") != -1 {
		path := CheckPath(value, currentPath)
		f, err := os.ReadFile(path)
		if err != nil {
			panic(err)
		}
		value = string(f)
	}

	nospaces := i.removeSpaces(value)

	tempMap := map[string]bool{}

	for _, s := range strings.Split(nospaces, ",") {
		tempMap[s] = true
	}

	*i = tempMap

	return nil
}

func (i *StringArrayFlag) removeSpaces(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, str)
}
