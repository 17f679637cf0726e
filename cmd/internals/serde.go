package client

//
// serde.go
//

import (
	"context"
	"fmt"
)

/*
Serde composes the format adapters, the cache, the wire codec and the
registry client into the register/encode/decode surface. One Serde owns
one cache; since registry ids are immutable the cache lives as long as the
Serde and is never invalidated.
*/
type Serde struct {
	client        *SchemaRegistryClient
	cache         *SchemaCache
	separator     string
	compatibility string
}

type SerdeOption func(*Serde)

// WithSeparator sets the string joining namespace and name when deriving
// subjects for AVRO schemas. Defaults to ".".
func WithSeparator(separator string) SerdeOption {
	return func(s *Serde) { s.separator = separator }
}

// WithCompatibility sets a compatibility level requested on every
// registration unless overridden per call.
func WithCompatibility(compatibility Compatibility) SerdeOption {
	return func(s *Serde) { s.compatibility = compatibility.String() }
}

func NewSerde(registryClient *SchemaRegistryClient, opts ...SerdeOption) *Serde {
	serde := &Serde{
		client:    registryClient,
		cache:     NewSchemaCache(),
		separator: ".",
	}
	if SubjectSeparator != "" {
		serde.separator = SubjectSeparator
	}
	if DefaultCompatibility != "" {
		serde.compatibility = DefaultCompatibility
	}
	for _, opt := range opts {
		opt(serde)
	}
	return serde
}

// RegisterOptions tunes a single registration. Subject is required for
// PROTOBUF and JSON schemas; Compatibility overrides the serde-wide
// setting for this subject.
type RegisterOptions struct {
	Subject        string
	Compatibility  string
	CompileOptions CompileOptions
}

// Register compiles and validates the schema locally, derives or accepts
// the subject, enforces compatibility overrides, then submits it and
// caches the minted id. Identical registrations from concurrent callers
// collapse into one network call.
func (s *Serde) Register(ctx context.Context, schema ConfluentSchema, opts RegisterOptions) (RegisteredSchema, error) {
	adapter, err := AdapterFor(schema.SType)
	if err != nil {
		return RegisteredSchema{}, err
	}

	subject := opts.Subject
	if subject == "" {
		if schema.SType != Avro {
			return RegisteredSchema{}, &ArgumentError{
				Name:   "subject",
				Reason: fmt.Sprintf("a subject can not be derived for %s schemas and must be provided", schema.SType),
			}
		}
		subject, err = adapter.DeriveSubject(schema, s.separator)
		if err != nil {
			return RegisteredSchema{}, err
		}
	}

	compileOpts := opts.CompileOptions
	references := adapter.ExtractReferences(schema)
	if len(references) > 0 {
		referred, err := s.resolveReferences(ctx, references)
		if err != nil {
			return RegisteredSchema{}, err
		}
		compileOpts = adapter.ApplyReferences(compileOpts, referred)
	}

	// Fail fast on a schema the registry would reject, without the round trip
	codec, err := adapter.Compile(schema, compileOpts)
	if err != nil {
		return RegisteredSchema{}, err
	}
	if err := adapter.Validate(codec); err != nil {
		return RegisteredSchema{}, err
	}

	compatibility := opts.Compatibility
	if compatibility == "" {
		compatibility = s.compatibility
	}
	existingCompatibility := ""
	if compatibility != "" {
		existingCompatibility, err = s.client.GetCompatibility(ctx, subject)
		if err != nil {
			return RegisteredSchema{}, err
		}
		if existingCompatibility != "" && existingCompatibility != compatibility {
			return RegisteredSchema{}, &CompatibilityError{
				Subject:   subject,
				Existing:  existingCompatibility,
				Requested: compatibility,
			}
		}
	}

	key := RegistrationKey{Subject: subject, Schema: schema.Schema, SType: schema.SType}
	id, err := s.cache.GetOrRegister(key, func() (int, error) {
		// Peers joined to this flight must not be failed by the first
		// caller walking away
		callCtx := context.WithoutCancel(ctx)

		id, err := s.client.RegisterSchema(callCtx, subject, ConfluentSchema{
			SType:      schema.SType,
			Schema:     schema.Schema,
			References: references,
		})
		if err != nil {
			return 0, err
		}

		if compatibility != "" && existingCompatibility == "" {
			if err := s.client.SetCompatibility(callCtx, subject, compatibility); err != nil {
				return 0, err
			}
		}
		return id, nil
	})
	if err != nil {
		return RegisteredSchema{}, err
	}

	// The codec compiled above is the artifact a fetch for this id would
	// produce, so prime the decode path with it
	s.cache.StoreCodec(id, codec)

	return RegisteredSchema{Id: id}, nil
}

// Encode encodes the payload with the schema behind id and wraps it in the
// wire envelope.
func (s *Serde) Encode(ctx context.Context, id int, value interface{}) ([]byte, error) {
	codec, err := s.codecFor(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Encode(value)
	if err != nil {
		return nil, err
	}
	return Frame(uint32(id), payload), nil
}

// DecodeOptions tunes a single decode. ReaderSchema, valid for AVRO only,
// overrides the writer schema used for the read projection.
type DecodeOptions struct {
	ReaderSchema *ConfluentSchema
}

// Decode unframes the buffer, obtains the writer schema's codec (fetching
// and compiling on a cache miss) and decodes the payload. A malformed
// envelope fails before any network call.
func (s *Serde) Decode(ctx context.Context, buffer []byte, opts DecodeOptions) (interface{}, error) {
	id, payload, err := Unframe(buffer)
	if err != nil {
		return nil, err
	}

	codec, err := s.codecFor(ctx, int(id))
	if err != nil {
		return nil, err
	}

	if opts.ReaderSchema != nil {
		resolving, ok := codec.(readerResolvingCodec)
		if !ok {
			return nil, &ArgumentError{Name: "readerSchema", Reason: "reader schemas are only supported for AVRO payloads"}
		}
		return resolving.DecodeWithReader(payload, *opts.ReaderSchema)
	}

	return codec.Decode(payload)
}

// codecFor returns the compiled codec for an id, fetching the schema and
// compiling it at most once per id across concurrent callers.
func (s *Serde) codecFor(ctx context.Context, id int) (Codec, error) {
	return s.cache.GetOrCompile(id, func() (Codec, error) {
		callCtx := context.WithoutCancel(ctx)

		response, err := s.client.GetSchemaByID(callCtx, id)
		if err != nil {
			return nil, err
		}

		adapter, err := AdapterFor(response.SType)
		if err != nil {
			return nil, err
		}
		schema := adapter.ToConfluentSchema(response)

		compileOpts := CompileOptions{}
		references := adapter.ExtractReferences(schema)
		if len(references) > 0 {
			referred, err := s.resolveReferences(callCtx, references)
			if err != nil {
				return nil, err
			}
			compileOpts = adapter.ApplyReferences(compileOpts, referred)
		}

		return adapter.Compile(schema, compileOpts)
	})
}

// resolveReferences fetches the schema text behind each declared reference.
func (s *Serde) resolveReferences(ctx context.Context, references []SchemaReference) (map[string]string, error) {
	referred := make(map[string]string, len(references))
	for _, reference := range references {
		record, err := s.client.GetSchema(ctx, reference.Subject, int64(reference.Version))
		if err != nil {
			return nil, err
		}
		referred[reference.Name] = record.Schema
	}
	return referred, nil
}
