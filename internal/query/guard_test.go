package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/circuitbreaker"
	"github.com/RakanDouli/souq-client/internal/testutil"
	"github.com/RakanDouli/souq-client/pkg/graphql"
)

func newTestGuard(t *testing.T, transport Transport) *GuardedTransport {
	t.Helper()

	breaker, err := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: 2,
		Cooldown:         time.Minute,
		Logger:           zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewGuardedTransport(transport, breaker)
}

func TestGuardedTransport_OpensOnTransportFailures(t *testing.T) {
	transport := &testutil.FakeTransport{
		Respond: testutil.RespondError(&graphql.TransportError{Err: errors.New("connection refused")}),
	}
	guard := newTestGuard(t, transport)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := guard.Do(ctx, "query Q { x }", nil, false)
		var transportErr *graphql.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected transport error, got %v", err)
		}
	}

	_, err := guard.Do(ctx, "query Q { x }", nil, false)
	if !errors.Is(err, circuitbreaker.ErrOpen) {
		t.Fatalf("expected breaker to reject the call, got %v", err)
	}
	if transport.Calls() != 2 {
		t.Errorf("open breaker must not reach the transport, got %d calls", transport.Calls())
	}
}

func TestGuardedTransport_RemoteErrorsDoNotTrip(t *testing.T) {
	transport := &testutil.FakeTransport{
		Respond: testutil.RespondError(&graphql.RemoteError{Message: "listing not found"}),
	}
	guard := newTestGuard(t, transport)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := guard.Do(ctx, "query Q { x }", nil, false)
		var remoteErr *graphql.RemoteError
		if !errors.As(err, &remoteErr) {
			t.Fatalf("expected the remote error to pass through, got %v", err)
		}
	}

	if transport.Calls() != 5 {
		t.Errorf("remote errors must not open the breaker, got %d calls", transport.Calls())
	}
}

func TestGuardedTransport_SuccessPassesThrough(t *testing.T) {
	transport := &testutil.FakeTransport{
		Respond: testutil.RespondJSON(`{"ok":true}`),
	}
	guard := newTestGuard(t, transport)

	data, err := guard.Do(context.Background(), "query Q { x }", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected payload: %s", data)
	}
}

var _ Transport = (*GuardedTransport)(nil)
