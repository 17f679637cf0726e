package client

//
// getInfo.go
//

import (
	"errors"
	"os"
)

// GetSRUrl returns the registry URL from environment variables
// if a URL can not be found, it exits the process
func GetSRUrl() string {
	url, present := os.LookupEnv("SR_URL")
	if present && url != "" {
		return url
	}

	panic(errors.New("SR_URL environment variable has not been specified"))
}

// GetAPIKey returns the API Key from environment variables
// an unset key means the registry accepts anonymous calls
func GetAPIKey() string {
	key, present := os.LookupEnv("SR_API_KEY")
	if present {
		return key
	}
	return ""
}

// GetAPISecret returns the API Secret from environment variables
// an unset secret means the registry accepts anonymous calls
func GetAPISecret() string {
	secret, present := os.LookupEnv("SR_API_SECRET")
	if present {
		return secret
	}
	return ""
}
