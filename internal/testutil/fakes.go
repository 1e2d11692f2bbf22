// Package testutil provides shared fakes and fixtures for unit tests.
package testutil

import (
	"context"
	"sync"

	json "github.com/goccy/go-json"
)

// FakeTransport is a scripted stand-in for the GraphQL client. Respond
// is invoked for every call; it may block to simulate a slow remote.
type FakeTransport struct {
	Respond func(document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error)

	mu         sync.Mutex
	calls      int
	callsByDoc map[string]int
}

// Do implements the query.Transport interface.
func (f *FakeTransport) Do(ctx context.Context, document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls++
	if f.callsByDoc == nil {
		f.callsByDoc = make(map[string]int)
	}
	f.callsByDoc[document]++
	f.mu.Unlock()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return f.Respond(document, variables, requireAuth)
}

// Calls returns the total number of transport invocations.
func (f *FakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// CallsFor returns the number of invocations for one document.
func (f *FakeTransport) CallsFor(document string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callsByDoc[document]
}

// RespondJSON builds a Respond function that always returns the given
// JSON payload.
func RespondJSON(payload string) func(string, map[string]interface{}, bool) (json.RawMessage, error) {
	return func(string, map[string]interface{}, bool) (json.RawMessage, error) {
		return json.RawMessage(payload), nil
	}
}

// RespondError builds a Respond function that always fails.
func RespondError(err error) func(string, map[string]interface{}, bool) (json.RawMessage, error) {
	return func(string, map[string]interface{}, bool) (json.RawMessage, error) {
		return nil, err
	}
}
