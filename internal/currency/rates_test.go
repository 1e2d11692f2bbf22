package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/query"
	"github.com/RakanDouli/souq-client/internal/testutil"
	"github.com/RakanDouli/souq-client/pkg/cache"
)

func newTestRefresher(transport *testutil.FakeTransport) *Refresher {
	queries := query.NewCachedClient(transport, cache.NewBoundedCache(zap.NewNop()), zap.NewNop())
	return NewRefresher(&RefresherConfig{
		Queries:  queries,
		Interval: time.Minute,
		Logger:   zap.NewNop(),
	})
}

func TestRefresher_StartsWithFallbackTable(t *testing.T) {
	r := newTestRefresher(&testutil.FakeTransport{Respond: testutil.RespondJSON(`{}`)})

	rate, ok := r.Table().Rate(USD, SYP)
	if !ok {
		t.Fatal("expected fallback USD→SYP rate to be present")
	}
	if rate <= MinUSDToSYPRate {
		t.Errorf("fallback rate %v must itself pass the sanity floor", rate)
	}
}

func TestRefresher_AcceptsPlausibleTable(t *testing.T) {
	transport := &testutil.FakeTransport{Respond: testutil.RespondJSON(
		`{"exchangeRates":[
			{"from":"USD","to":"SYP","rate":15500},
			{"from":"SYP","to":"USD","rate":0.0000645},
			{"from":"USD","to":"EUR","rate":0.91}
		]}`)}
	r := newTestRefresher(transport)

	err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rate, ok := r.Table().Rate(USD, SYP)
	if !ok || rate != 15500 {
		t.Errorf("expected fetched rate 15500, got %v (ok=%v)", rate, ok)
	}
}

func TestRefresher_RejectsImplausibleTable(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "rate-below-sanity-floor",
			response: `{"exchangeRates":[{"from":"USD","to":"SYP","rate":7}]}`,
		},
		{
			name:     "empty-table",
			response: `{"exchangeRates":[]}`,
		},
		{
			name:     "missing-usd-syp-pair",
			response: `{"exchangeRates":[{"from":"USD","to":"EUR","rate":0.91}]}`,
		},
		{
			name:     "non-positive-rates-dropped",
			response: `{"exchangeRates":[{"from":"USD","to":"SYP","rate":-15000}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &testutil.FakeTransport{Respond: testutil.RespondJSON(tt.response)}
			r := newTestRefresher(transport)
			before := r.Table()

			err := r.Refresh(context.Background())
			if err == nil {
				t.Fatal("expected sanity check rejection")
			}

			after := r.Table()
			if len(after) != len(before) {
				t.Error("rejected payload must leave the table untouched")
			}
			rate, _ := after.Rate(USD, SYP)
			if rate != before[RateKey(USD, SYP)] {
				t.Error("rejected payload must not alter existing rates")
			}
		})
	}
}

func TestRefresher_FetchFailureKeepsCurrentTable(t *testing.T) {
	remoteErr := errors.New("gateway timeout")
	transport := &testutil.FakeTransport{Respond: testutil.RespondError(remoteErr)}
	r := newTestRefresher(transport)

	err := r.Refresh(context.Background())
	if !errors.Is(err, remoteErr) {
		t.Fatalf("expected fetch error to surface, got %v", err)
	}

	if _, ok := r.Table().Rate(USD, SYP); !ok {
		t.Error("fetch failure must keep the fallback table")
	}
}

func TestRefresher_TableReturnsSnapshot(t *testing.T) {
	r := newTestRefresher(&testutil.FakeTransport{Respond: testutil.RespondJSON(`{}`)})

	snapshot := r.Table()
	snapshot[RateKey(USD, SYP)] = 1

	rate, _ := r.Table().Rate(USD, SYP)
	if rate == 1 {
		t.Error("mutating a returned table must not affect the refresher")
	}
}
