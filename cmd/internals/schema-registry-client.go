package client

//
// schema-registry-client.go
//

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

/*
Lightweight client to schema registry handling the calls the serde needs:
registering schemas, fetching by id, and reading/writing per-subject
compatibility. Idempotent reads run under the retry policy; writes are
issued exactly once. All functions are methods of SchemaRegistryClient.
*/

var statusError = "Received status code %d instead of 200 for %s, on %s"

type SchemaRegistryClient struct {
	SRUrl       string
	SRApiKey    string
	SRApiSecret string
	Retry       RetryPolicy
}

func NewSchemaRegistryClient(SR string, apiKey string, apiSecret string) *SchemaRegistryClient {
	// If the parameters are empty, go fetch from env
	if SR == "" {
		SR = GetSRUrl()
		apiKey = GetAPIKey()
		apiSecret = GetAPISecret()
	}

	timeout := HttpCallTimeout
	if timeout == 0 {
		timeout = 30
	}
	httpClient = http.Client{
		Timeout: time.Second * time.Duration(timeout),
	}

	return &SchemaRegistryClient{SRUrl: SR, SRApiKey: apiKey, SRApiSecret: apiSecret, Retry: DefaultRetryPolicy()}
}

func (src *SchemaRegistryClient) IsReachable() bool {
	req := GetNewRequest(context.Background(), "GET", src.SRUrl, src.SRApiKey, src.SRApiSecret, nil)

	res, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	return res.StatusCode == 200
}

// RegisterSchema submits a schema under the given subject and returns the
// minted id. Registrations are not idempotent from the registry's point of
// view, so this call is never retried.
func (src *SchemaRegistryClient) RegisterSchema(ctx context.Context, subject string, schema ConfluentSchema) (int, error) {
	endpoint := fmt.Sprintf("%s/subjects/%s/versions", src.SRUrl, url.PathEscape(subject))

	schemaRequest := SchemaToRegister{Schema: schema.Schema, SType: schema.SType, References: schema.References}
	schemaJSON, err := json.Marshal(schemaRequest)
	if err != nil {
		return 0, err
	}

	req := GetNewRequest(ctx, "POST", endpoint, src.SRApiKey, src.SRApiSecret, bytes.NewReader(schemaJSON))
	registryCallsTotal.WithLabelValues("POST").Inc()

	res, err := httpClient.Do(req)
	if err != nil {
		return 0, &RegistryUnavailableError{Endpoint: endpoint, Method: "POST", Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, &RegistryUnavailableError{Endpoint: endpoint, Method: "POST", Err: err}
	}

	switch res.StatusCode {
	case 200:
	case 409:
		return 0, &CompatibilityError{Subject: subject}
	case 422:
		return 0, &InvalidSchemaError{SType: schema.SType, Reason: string(body)}
	default:
		return 0, &RegistryUnavailableError{Endpoint: endpoint, Method: "POST", StatusCode: res.StatusCode, Body: string(body)}
	}

	registered := RegisteredSchema{}
	if err := json.Unmarshal(body, &registered); err != nil {
		return 0, &RegistryUnavailableError{Endpoint: endpoint, Method: "POST", Err: err}
	}

	schemasRegisteredTotal.Inc()
	return registered.Id, nil
}

// GetSchemaByID fetches the schema text, type and references behind an id.
func (src *SchemaRegistryClient) GetSchemaByID(ctx context.Context, id int) (SchemaResponse, error) {
	endpoint := fmt.Sprintf("%s/schemas/ids/%d", src.SRUrl, id)

	schemaResponse := SchemaResponse{}
	if err := src.getJSON(ctx, endpoint, &schemaResponse); err != nil {
		return SchemaResponse{}, err
	}

	schemaResponse.Id = id
	return schemaResponse.setTypeIfEmpty(), nil
}

// GetSchema fetches one registered version under a subject, used to
// resolve schema references and to export schemas to disk.
func (src *SchemaRegistryClient) GetSchema(ctx context.Context, subject string, version int64) (SchemaRecord, error) {
	endpoint := fmt.Sprintf("%s/subjects/%s/versions/%d", src.SRUrl, url.PathEscape(subject), version)

	schemaRecord := SchemaRecord{}
	if err := src.getJSON(ctx, endpoint, &schemaRecord); err != nil {
		return SchemaRecord{}, err
	}

	return schemaRecord.setTypeIfEmpty(), nil
}

// GetCompatibility returns the subject's compatibility setting, or the
// empty string when the subject has no setting of its own.
func (src *SchemaRegistryClient) GetCompatibility(ctx context.Context, subject string) (string, error) {
	endpoint := fmt.Sprintf("%s/config/%s", src.SRUrl, url.PathEscape(subject))

	config := ConfigRecord{}
	err := src.getJSON(ctx, endpoint, &config)
	if err != nil {
		var unavailable *RegistryUnavailableError
		// 404 means the subject inherits the global setting
		if errors.As(err, &unavailable) && unavailable.StatusCode == 404 {
			return "", nil
		}
		return "", err
	}
	return config.CompatibilityLevel, nil
}

// SetCompatibility sets per-subject compatibility. Writes are not retried.
func (src *SchemaRegistryClient) SetCompatibility(ctx context.Context, subject string, compatibility string) error {
	endpoint := fmt.Sprintf("%s/config/%s", src.SRUrl, url.PathEscape(subject))

	compat := CompatRecord{Compatibility: compatibility}
	compatJSON, err := json.Marshal(compat)
	if err != nil {
		return err
	}

	req := GetNewRequest(ctx, "PUT", endpoint, src.SRApiKey, src.SRApiSecret, bytes.NewReader(compatJSON))
	registryCallsTotal.WithLabelValues("PUT").Inc()

	res, err := httpClient.Do(req)
	if err != nil {
		return &RegistryUnavailableError{Endpoint: endpoint, Method: "PUT", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		body, _ := io.ReadAll(res.Body)
		return &RegistryUnavailableError{Endpoint: endpoint, Method: "PUT", StatusCode: res.StatusCode, Body: string(body)}
	}
	return nil
}

// GetSubjects lists registered subjects, filtered by the allow/disallow lists.
func (src *SchemaRegistryClient) GetSubjects(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/subjects", src.SRUrl)

	response := []string{}
	if err := src.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	filteredSubjects := []string{}
	for key := range filterListedSubjects(response) {
		filteredSubjects = append(filteredSubjects, key)
	}
	return filteredSubjects, nil
}

// GetVersions lists the registered versions under a subject.
func (src *SchemaRegistryClient) GetVersions(ctx context.Context, subject string) ([]int64, error) {
	endpoint := fmt.Sprintf("%s/subjects/%s/versions", src.SRUrl, url.PathEscape(subject))

	response := []int64{}
	if err := src.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Generic handling of GET queries to the SR instance, run under the retry
// policy since reads are idempotent.
func (src *SchemaRegistryClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	return src.Retry.Run(ctx, func() error {
		req := GetNewRequest(ctx, "GET", endpoint, src.SRApiKey, src.SRApiSecret, nil)
		registryCallsTotal.WithLabelValues("GET").Inc()

		res, err := httpClient.Do(req)
		if err != nil {
			return &RegistryUnavailableError{Endpoint: endpoint, Method: "GET", Err: err}
		}
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return &RegistryUnavailableError{Endpoint: endpoint, Method: "GET", Err: err}
		}

		if res.StatusCode != 200 {
			return &RegistryUnavailableError{Endpoint: endpoint, Method: "GET", StatusCode: res.StatusCode, Body: string(body)}
		}

		if err := json.Unmarshal(body, out); err != nil {
			return &RegistryUnavailableError{Endpoint: endpoint, Method: "GET", Err: err}
		}
		return nil
	})
}
