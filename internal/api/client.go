package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/claimtree/claimtree/internal/model"
)

// ErrNotFound indicates the requested point does not exist on the server.
// Callers use this to render an empty state instead of retrying.
var ErrNotFound = errors.New("point not found")

// ErrUnauthenticated indicates the server rejected a mutation for lack of a
// valid session.
var ErrUnauthenticated = errors.New("not authenticated")

// Client speaks the GraphQL-over-HTTP protocol of the argument-graph server.
// It performs no retries; callers decide whether to re-issue.
type Client struct {
	httpClient *http.Client
	endpoint   string
	authToken  string
	userAgent  string
	maxBytes   int64
}

// NewClient creates a client for the given API endpoint
func NewClient(apiCfg model.APIConfig, httpCfg model.HTTPConfig) *Client {
	transport := http.DefaultTransport
	if httpCfg.InsecureTLS {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	maxBytes := httpCfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 4_000_000
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: transport,
		},
		endpoint:  apiCfg.Endpoint,
		authToken: apiCfg.AuthToken,
		userAgent: httpCfg.UserAgent,
		maxBytes:  maxBytes,
	}
}

// envelope is the standard GraphQL request body
type envelope struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// responseEnvelope is the standard GraphQL response body
type responseEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors,omitempty"`
}

type responseError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions"`
}

// do executes one GraphQL operation and decodes data into out
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(envelope{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%s: %w", resp.Status, ErrUnauthenticated)
		}
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var env responseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(env.Errors) > 0 {
		if isNotFound(env.Errors) {
			return fmt.Errorf("%s: %w", env.Errors[0].Message, ErrNotFound)
		}
		if isUnauthenticated(env.Errors) {
			return fmt.Errorf("%s: %w", env.Errors[0].Message, ErrUnauthenticated)
		}
		return fmt.Errorf("server rejection: %s", env.Errors[0].Message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}

func isNotFound(errs []responseError) bool {
	for _, e := range errs {
		if e.Extensions.Code == "NOT_FOUND" || strings.Contains(strings.ToLower(e.Message), "not found") {
			return true
		}
	}
	return false
}

func isUnauthenticated(errs []responseError) bool {
	for _, e := range errs {
		if e.Extensions.Code == "UNAUTHENTICATED" {
			return true
		}
	}
	return false
}
