// Package client performs the request/response exchange with the
// recommendation service on behalf of the finder.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

// ServiceFailureMessage is reported for any non-2xx response.
const ServiceFailureMessage = "Failed to fetch recommendations. Try again."

// Client holds only its endpoint and transport; it keeps no memory of prior
// queries and is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a Client posting to endpoint. A nil httpClient uses
// http.DefaultClient.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

type recommendRequest struct {
	Query string `json:"query"`
}

type recommendResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// ServiceError means a response arrived with a non-success status.
type ServiceError struct {
	StatusCode int
}

func (e *ServiceError) Error() string {
	return ServiceFailureMessage
}

// TransportError means the exchange could not be completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means a success response carried a body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsServiceError(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}

func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// Recommend posts query and returns the ranked recommendations. An absent or
// empty list is a successful, empty result.
func (c *Client) Recommend(ctx context.Context, query string) ([]domain.Recommendation, error) {
	body, err := json.Marshal(recommendRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ServiceError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var decoded recommendResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if len(decoded.Recommendations) == 0 {
		return []domain.Recommendation{}, nil
	}
	return decoded.Recommendations, nil
}
