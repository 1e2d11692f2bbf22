package query

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"

	"github.com/RakanDouli/souq-client/internal/circuitbreaker"
	"github.com/RakanDouli/souq-client/pkg/graphql"
)

// GuardedTransport gates a Transport behind a circuit breaker. Only
// transport-level failures count against the breaker; a reply carrying
// GraphQL errors proves the server is reachable and counts as success.
type GuardedTransport struct {
	next    Transport
	breaker *circuitbreaker.Breaker
}

// NewGuardedTransport wraps next with the breaker.
func NewGuardedTransport(next Transport, breaker *circuitbreaker.Breaker) *GuardedTransport {
	return &GuardedTransport{next: next, breaker: breaker}
}

// Do implements Transport.
func (g *GuardedTransport) Do(ctx context.Context, document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error) {
	if !g.breaker.Allow() {
		return nil, circuitbreaker.ErrOpen
	}

	data, err := g.next.Do(ctx, document, variables, requireAuth)

	var transportErr *graphql.TransportError
	if errors.As(err, &transportErr) {
		g.breaker.RecordFailure()
	} else {
		g.breaker.RecordSuccess()
	}

	return data, err
}
