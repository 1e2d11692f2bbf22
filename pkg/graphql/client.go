package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is an HTTP client for the marketplace GraphQL API.
// It carries no retry or caching policy of its own; callers wrap it
// (see internal/query) or retry at their level.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenProvider
	logger     *zap.Logger
}

// NewClient creates a new GraphQL client.
func NewClient(endpoint string, tokens TokenProvider, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: logger,
	}
}

type requestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type responseBody struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type remoteErrorEntry struct {
	Message string `json:"message"`
}

// Do executes a GraphQL document against the remote endpoint and returns
// the raw data payload.
//
// Failure modes:
//   - *AuthRequiredError when requireAuth is set and no token is available
//   - *TransportError on network failure or a non-2xx response
//   - *RemoteError when the response carries a structured errors array
func (c *Client) Do(ctx context.Context, document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error) {
	token, hasToken := c.tokens.Token()
	if requireAuth && !hasToken {
		AuthFailuresTotal.Inc()
		return nil, &AuthRequiredError{Document: document}
	}

	payload, err := json.Marshal(requestBody{
		Query:     document,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "souq-client/1.0")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if hasToken {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	RequestDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		TransportFailuresTotal.Inc()
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		TransportFailuresTotal.Inc()
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		TransportFailuresTotal.Inc()
		return nil, &TransportError{Err: fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))}
	}

	var parsed responseBody
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		TransportFailuresTotal.Inc()
		return nil, &TransportError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(parsed.Errors) > 0 && string(parsed.Errors) != "null" {
		RemoteFailuresTotal.Inc()
		return nil, &RemoteError{Message: firstErrorMessage(parsed.Errors)}
	}

	RequestsTotal.Inc()
	c.logger.Debug("graphql-request-completed",
		zap.Int("status", resp.StatusCode),
		zap.Int("response-bytes", len(body)))

	return parsed.Data, nil
}

// firstErrorMessage extracts the first message of a GraphQL errors
// array, falling back to a generic message when the array is malformed.
func firstErrorMessage(raw json.RawMessage) string {
	var entries []remoteErrorEntry
	err := json.Unmarshal(raw, &entries)
	if err != nil || len(entries) == 0 || entries[0].Message == "" {
		return genericRemoteMessage
	}
	return entries[0].Message
}
