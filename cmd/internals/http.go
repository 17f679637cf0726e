package client

//
// http.go
//

import (
	"context"
	"io"
	"net/http"
)

// Returns an HTTP request with the given information to execute
func GetNewRequest(ctx context.Context, method string, endpoint string, key string, secret string, reader io.Reader) *http.Request {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		panic(err)
	}

	if key != "" || secret != "" {
		req.SetBasicAuth(key, secret)
	}
	req.Header.Add("Content-Type", "application/vnd.schemaregistry.v1+json")
	req.Header.Add("User-Agent", "ccloud-schema-serde/"+Version)
	req.Header.Add("Correlation-Context", "service.name=ccloud-schema-serde,service.version="+Version)

	return req
}
