// Package insure is a Go client for the lifesure API. It carries the
// session state for a signed-in user, resolves and caches the user's
// role, and gates navigation on both.
package insure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrorKind classifies an API failure by the HTTP status that caused
// it. Callers branch on the kind, not the raw status.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindServerError  ErrorKind = "server_error"
	KindNetworkError ErrorKind = "network_error"
)

type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 response. Callers
// should force a sign-out when it returns true.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsConflict reports whether err is a 409 response. Registration
// treats this as "already exists", not a failure.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindConflict
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	default:
		return KindServerError
	}
}

// CredentialSource supplies the bearer credential for outgoing
// requests. The session store implements it.
type CredentialSource interface {
	AccessToken() string
}

// Client issues authenticated requests against the API. Failed
// requests are surfaced once; there is no retry policy, the caller
// resubmits the action.
type Client struct {
	baseURL string
	creds   CredentialSource
	http    *http.Client
}

func NewClient(baseURL string, creds CredentialSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    httpClient,
	}
}

// Request performs an API call and returns the raw response body for
// the caller to decode. Any non-2xx status comes back as *APIError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetworkError, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	return data, nil
}

// Get is a convenience wrapper that decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	data, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Post is a convenience wrapper that decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func errorMessage(data []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(data))
}
