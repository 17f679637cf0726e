package client

//
// errors.go
//

import (
	"fmt"
)

// SchemaCompilationError signals that raw schema text could not be parsed
// into an executable codec. It is fatal to the call and never retried.
type SchemaCompilationError struct {
	SType SchemaType
	Err   error
}

func (e *SchemaCompilationError) Error() string {
	return fmt.Sprintf("failed to compile %s schema: %s", e.SType, e.Err)
}

func (e *SchemaCompilationError) Unwrap() error { return e.Err }

// InvalidSchemaError signals a schema that parsed but does not meet the
// structural requirements of its format.
type InvalidSchemaError struct {
	SType  SchemaType
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid %s schema: %s", e.SType, e.Reason)
}

// MissingMetadataError signals that a subject could not be derived because
// the schema lacks the required structural metadata. Callers must supply an
// explicit subject instead.
type MissingMetadataError struct {
	Field string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("can not derive a subject: schema has no %s", e.Field)
}

// ArgumentError signals a missing or unusable required option.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

// CompatibilityError signals a compatibility override that conflicts with
// the setting already present on the subject, or a registration the
// registry rejected as incompatible.
type CompatibilityError struct {
	Subject   string
	Existing  string
	Requested string
}

func (e *CompatibilityError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("subject %s is already set to compatibility %s, refusing override to %s",
			e.Subject, e.Existing, e.Requested)
	}
	return fmt.Sprintf("registry rejected schema for subject %s as incompatible", e.Subject)
}

// WireFormatError signals a malformed message envelope.
type WireFormatError struct {
	Reason string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("malformed wire format: %s", e.Reason)
}

// EncodingError signals a payload that does not conform to the schema shape.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return fmt.Sprintf("failed to encode payload: %s", e.Err) }

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError signals a payload that could not be decoded with the
// writer schema, or an incompatible reader/writer pair.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string { return fmt.Sprintf("failed to decode payload: %s", e.Err) }

func (e *DecodingError) Unwrap() error { return e.Err }

// RegistryUnavailableError signals a network or HTTP failure talking to the
// registry, surfaced after the retry policy is exhausted. StatusCode is 0
// when the call never produced an HTTP response.
type RegistryUnavailableError struct {
	Endpoint   string
	Method     string
	StatusCode int
	Body       string
	Err        error
}

func (e *RegistryUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry unreachable on %s: %s", e.Endpoint, e.Err)
	}
	return fmt.Sprintf(statusError, e.StatusCode, e.Method, e.Endpoint) + ", HTTP Response: " + e.Body
}

func (e *RegistryUnavailableError) Unwrap() error { return e.Err }

// Transport failures and throttling/server-side statuses are worth a retry,
// everything else the registry said on purpose.
func (e *RegistryUnavailableError) retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
