package client

//
// helpers_test.go
//

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterListedSubjects(t *testing.T) {
	defer func() {
		AllowList = nil
		DisallowList = nil
	}()

	subjects := []string{"testSubjectValue", "testSubjectKey", "otherSubject"}

	AllowList = nil
	DisallowList = nil
	assert.Len(t, filterListedSubjects(subjects), 3)

	AllowList = map[string]bool{"testSubjectValue": true, "testSubjectKey": true}
	DisallowList = nil
	filtered := filterListedSubjects(subjects)
	assert.Len(t, filtered, 2)
	assert.Contains(t, filtered, "testSubjectValue")
	assert.NotContains(t, filtered, "otherSubject")

	AllowList = nil
	DisallowList = map[string]bool{"testSubjectKey": true}
	filtered = filterListedSubjects(subjects)
	assert.Len(t, filtered, 2)
	assert.NotContains(t, filtered, "testSubjectKey")

	// Disallow wins when a subject is on both lists
	AllowList = map[string]bool{"testSubjectValue": true}
	DisallowList = map[string]bool{"testSubjectValue": true}
	assert.Len(t, filterListedSubjects(subjects), 0)
}

func TestCheckSubjectIsAllowed(t *testing.T) {
	defer func() {
		AllowList = nil
		DisallowList = nil
	}()

	AllowList = nil
	DisallowList = nil
	assert.True(t, checkSubjectIsAllowed("testSubject"))

	AllowList = map[string]bool{"testSubject": true}
	assert.True(t, checkSubjectIsAllowed("testSubject"))
	assert.False(t, checkSubjectIsAllowed("otherSubject"))

	AllowList = nil
	DisallowList = map[string]bool{"testSubject": true}
	assert.False(t, checkSubjectIsAllowed("testSubject"))
}

func TestParseCompatibility(t *testing.T) {
	parsed, err := ParseCompatibility("full_transitive")
	assert.NoError(t, err)
	assert.Equal(t, FULL_TRANSITIVE, parsed)

	parsed, err = ParseCompatibility("BACKWARD")
	assert.NoError(t, err)
	assert.Equal(t, BACKWARD, parsed)

	_, err = ParseCompatibility("sideways")
	assert.Error(t, err)
}

func TestSchemaTypeExtension(t *testing.T) {
	assert.Equal(t, "avsc", Avro.Extension())
	assert.Equal(t, "proto", Protobuf.Extension())
	assert.Equal(t, "json", Json.Extension())
}
