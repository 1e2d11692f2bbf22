package graphql

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, &StaticTokenProvider{Value: token}, zap.NewNop())
}

func TestClient_Do_Success(t *testing.T) {
	var gotAuth, gotRequestID, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"listings":[{"id":"a1"}]}}`))
	}, "secret-token")

	data, err := client.Do(context.Background(), `query { listings { id } }`, map[string]interface{}{"limit": 1}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(data) != `{"listings":[{"id":"a1"}]}` {
		t.Errorf("unexpected data payload: %s", data)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-Id header to be set")
	}
	if gotBody == "" {
		t.Error("expected request body to be sent")
	}
}

func TestClient_Do_AuthRequired(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.Do(context.Background(), `mutation { addToWishlist }`, nil, true)

	var authErr *AuthRequiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthRequiredError, got %v", err)
	}
	if called {
		t.Error("transport must not be reached when the credential is missing")
	}
}

func TestClient_Do_RemoteError(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantMessage string
	}{
		{
			name:        "first-message-surfaced-verbatim",
			response:    `{"errors":[{"message":"listing not found"},{"message":"second"}]}`,
			wantMessage: "listing not found",
		},
		{
			name:        "malformed-errors-fall-back-to-generic",
			response:    `{"errors":{"unexpected":"shape"}}`,
			wantMessage: "remote call failed",
		},
		{
			name:        "empty-message-falls-back-to-generic",
			response:    `{"errors":[{}]}`,
			wantMessage: "remote call failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.response))
			}, "")

			_, err := client.Do(context.Background(), `query { x }`, nil, false)

			var remoteErr *RemoteError
			if !errors.As(err, &remoteErr) {
				t.Fatalf("expected RemoteError, got %v", err)
			}
			if remoteErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, remoteErr.Message)
			}
		})
	}
}

func TestClient_Do_TransportError(t *testing.T) {
	t.Run("unreachable-endpoint", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", &StaticTokenProvider{}, zap.NewNop())

		_, err := client.Do(context.Background(), `query { x }`, nil, false)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
	})

	t.Run("non-200-status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, "")

		_, err := client.Do(context.Background(), `query { x }`, nil, false)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
	})

	t.Run("caller-deadline-respected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}, "")

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.Do(ctx, `query { x }`, nil, false)

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError on deadline, got %v", err)
		}
	})
}

func TestTokenProviders(t *testing.T) {
	t.Run("static-empty-means-no-credential", func(t *testing.T) {
		var p *StaticTokenProvider
		if _, ok := p.Token(); ok {
			t.Error("nil provider must report no token")
		}
		if _, ok := (&StaticTokenProvider{}).Token(); ok {
			t.Error("empty provider must report no token")
		}
	})

	t.Run("env-provider-reads-on-every-call", func(t *testing.T) {
		p := &EnvTokenProvider{Key: "SOUQ_TEST_TOKEN"}

		if _, ok := p.Token(); ok {
			t.Error("expected no token before env var is set")
		}

		t.Setenv("SOUQ_TEST_TOKEN", "abc")

		token, ok := p.Token()
		if !ok || token != "abc" {
			t.Errorf("expected token %q, got %q (ok=%v)", "abc", token, ok)
		}
	})
}
