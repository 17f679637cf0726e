package client

//
// helpers.go
//

import (
	"fmt"
	"log"
)

// Simple check function that will panic if there is an error present
func check(e error) {
	if e != nil {
		panic(e)
	}
}

// Simple check function that will not fail and log if there is an error present
func checkDontFail(e error) {
	if e != nil {
		log.Println(e)
	}
}

// Prints the version of the ccloud-schema-serde
func printVersion() {
	fmt.Printf("ccloud-schema-serde: %s\n", Version)
}

// Filters the provided slice of subjects according to what is provided in AllowList and DisallowList
func filterListedSubjects(response []string) map[string]bool {
	// Start allow list work
	subjectMap := map[string]bool{}

	for _, s := range response { // Generate a map of subjects for easier manipulation
		subjectMap[s] = true
	}

	for s := range subjectMap { // Filter out for allow lists
		if AllowList != nil { // If allow list is defined
			_, allowContains := AllowList[s]
			if !allowContains { // If allow list does not contain it, delete it
				delete(subjectMap, s)
			}
		}
		if DisallowList != nil { // If disallow list is defined
			_, disallowContains := DisallowList[s]
			if disallowContains { // If disallow list contains it, delete it
				delete(subjectMap, s)
			}
		}
	}

	return subjectMap
}

// Reports whether a single subject passes the AllowList and DisallowList
func checkSubjectIsAllowed(subject string) bool {
	_, allowed := filterListedSubjects([]string{subject})[subject]
	return allowed
}
