/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apicaller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrUnreachable wraps failures to reach the cluster at all
var ErrUnreachable = errors.New("cluster unreachable")

// Performer is satisfied by both the Elasticsearch and the OpenSearch clients
type Performer interface {
	Perform(*http.Request) (*http.Response, error)
}

// Request describes a single call to the cluster REST API
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is marshalled to JSON unless it is already a []byte
	Body interface{}
}

// Response holds the raw result of a successful call
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into target
func (r *Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIError is returned for every response with a status code of 400 or above
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cluster API error: %s %s: %d %s - %s",
		e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// IsNotFound reports whether err is an APIError with status 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConnectionError reports whether err means the pooled connection itself is
// unusable: the cluster could not be reached or rejected the credentials
func IsConnectionError(err error) bool {
	if errors.Is(err, ErrUnreachable) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Caller sends arbitrary requests to a cluster through its client transport
type Caller struct {
	transport Performer
}

func New(transport Performer) *Caller {
	return &Caller{transport: transport}
}

// Call performs the request and returns the response body
func (c *Caller) Call(ctx context.Context, request Request) (*Response, error) {

	var body io.Reader
	switch payload := request.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(payload)
	default:
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payloadJSON)
	}

	target := request.Path
	if len(request.Query) > 0 {
		target = fmt.Sprintf("%s?%s", request.Path, request.Query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.transport.Perform(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform %s %s: %w: %w", request.Method, request.Path, ErrUnreachable, err)
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode >= 400 {
		return nil, &APIError{
			Method:     request.Method,
			Path:       request.Path,
			StatusCode: res.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	return &Response{StatusCode: res.StatusCode, Body: bodyBytes}, nil
}

// DocumentVersion carries the optimistic concurrency tokens OpenSearch plugin
// APIs require when updating an existing document
type DocumentVersion struct {
	SeqNo       int64 `json:"_seq_no"`
	PrimaryTerm int64 `json:"_primary_term"`
}

// Query returns the version as if_seq_no / if_primary_term parameters
func (v *DocumentVersion) Query() url.Values {
	return url.Values{
		"if_seq_no":       []string{fmt.Sprintf("%d", v.SeqNo)},
		"if_primary_term": []string{fmt.Sprintf("%d", v.PrimaryTerm)},
	}
}

// Version fetches the document at path and returns its concurrency tokens,
// or nil when the document does not exist
func (c *Caller) Version(ctx context.Context, path string) (*DocumentVersion, error) {
	res, err := c.Call(ctx, Request{Method: http.MethodGet, Path: path})
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	version := &DocumentVersion{}
	if err := res.Decode(version); err != nil {
		return nil, err
	}
	return version, nil
}

// Delete removes the document at path. A missing document is not an error.
func (c *Caller) Delete(ctx context.Context, path string) (found bool, err error) {
	_, err = c.Call(ctx, Request{Method: http.MethodDelete, Path: path})
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
