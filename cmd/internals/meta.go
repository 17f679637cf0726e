package client

//
// meta.go
//

import (
	"fmt"
	"net/http"
	"strings"
)

var HttpCallTimeout int
var Version = "1.0-SNAPSHOT"
var httpClient http.Client

var SRUrl string
var SRKey string
var SRSecret string
var PathToWrite string
var SubjectSeparator string
var DefaultCompatibility string
var AllowList StringArrayFlag
var DisallowList StringArrayFlag

// Define SchemaType Enum
type SchemaType string

const (
	Avro     SchemaType = "AVRO"
	Protobuf SchemaType = "PROTOBUF"
	Json     SchemaType = "JSON"
)

func (s SchemaType) String() string {
	return string(s)
}

// Extension returns the file extension used when writing a schema of this type to disk
func (s SchemaType) Extension() string {
	switch s {
	case Protobuf:
		return "proto"
	case Json:
		return "json"
	default:
		return "avsc"
	}
}

// Define Compatibility Enum
type Compatibility int

const (
	BACKWARD Compatibility = iota
	BACKWARD_TRANSITIVE
	FORWARD
	FORWARD_TRANSITIVE
	FULL
	FULL_TRANSITIVE
	NONE
)

func (c Compatibility) String() string {
	return [...]string{"BACKWARD", "BACKWARD_TRANSITIVE", "FORWARD", "FORWARD_TRANSITIVE", "FULL", "FULL_TRANSITIVE", "NONE"}[c]
}

// ParseCompatibility maps a registry compatibility string to its enum value
func ParseCompatibility(value string) (Compatibility, error) {
	for c := BACKWARD; c <= NONE; c++ {
		if c.String() == strings.ToUpper(value) {
			return c, nil
		}
	}
	return NONE, fmt.Errorf("unknown compatibility setting: %s", value)
}
