// Package wishlist maintains the current user's wishlist membership with
// optimistic updates: the local set changes before the remote mutation
// resolves and is rolled back if the mutation fails.
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/query"
)

// GraphQL documents owned by this store. The fetch-all read goes through
// the cached query client; mutations always hit the transport.
const (
	fetchWishlistQuery = `query MyWishlist { wishlist { id } }`

	addToWishlistMutation = `mutation AddToWishlist($listingId: ID!) {
  addToWishlist(listingId: $listingId) { id }
}`

	removeFromWishlistMutation = `mutation RemoveFromWishlist($listingId: ID!) {
  removeFromWishlist(listingId: $listingId)
}`
)

// ErrMutationInFlight is returned when a toggle is requested for a
// listing whose previous mutation has not resolved yet. Mutations for
// one listing are serialized rather than raced.
var ErrMutationInFlight = errors.New("wishlist: mutation already in flight for this listing")

// Observer is notified after every membership change, including
// optimistic flips and their rollbacks.
type Observer func(listingID string, member bool)

// Store is the optimistic wishlist membership store. The membership set
// is owned exclusively by the store; at rest it matches the server's
// last known truth modulo the fetch TTL.
type Store struct {
	queries *query.CachedClient
	ttl     time.Duration
	logger  *zap.Logger

	mu        sync.Mutex
	members   map[string]struct{}
	inflight  map[string]struct{}
	observers []Observer
}

// Config holds wishlist store configuration.
type Config struct {
	Queries *query.CachedClient
	TTL     time.Duration
	Logger  *zap.Logger
}

// New creates a wishlist store.
func New(cfg *Config) *Store {
	return &Store{
		queries:  cfg.Queries,
		ttl:      cfg.TTL,
		logger:   cfg.Logger,
		members:  make(map[string]struct{}),
		inflight: make(map[string]struct{}),
	}
}

// Subscribe registers an observer for membership changes.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// LoadAll fetches the full membership set and replaces the local set
// wholesale. Repeat calls within the TTL are served from cache, so the
// method is cheap to call on every screen entry.
func (s *Store) LoadAll(ctx context.Context) error {
	data, err := s.queries.CachedRequest(ctx, fetchWishlistQuery, nil, s.ttl)
	if err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}

	var payload struct {
		Wishlist []struct {
			ID string `json:"id"`
		} `json:"wishlist"`
	}
	err = json.Unmarshal(data, &payload)
	if err != nil {
		return fmt.Errorf("decode wishlist: %w", err)
	}

	members := make(map[string]struct{}, len(payload.Wishlist))
	for _, item := range payload.Wishlist {
		members[item.ID] = struct{}{}
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()

	s.logger.Debug("wishlist-loaded", zap.Int("count", len(members)))
	return nil
}

// Add optimistically marks the listing as wishlisted, then issues the
// remote mutation. On failure the local flip is rolled back and the
// error returned. Adding a listing that is already a member is a no-op.
func (s *Store) Add(ctx context.Context, listingID string) error {
	s.mu.Lock()
	if _, busy := s.inflight[listingID]; busy {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	if _, ok := s.members[listingID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.members[listingID] = struct{}{}
	s.inflight[listingID] = struct{}{}
	s.mu.Unlock()

	s.notify(listingID, true)
	ToggleTotal.WithLabelValues("add").Inc()

	vars := map[string]interface{}{"listingId": listingID}
	_, err := s.queries.Request(ctx, addToWishlistMutation, vars, true)

	s.mu.Lock()
	delete(s.inflight, listingID)
	if err != nil {
		delete(s.members, listingID)
	}
	s.mu.Unlock()

	if err != nil {
		s.notify(listingID, false)
		RollbacksTotal.Inc()
		s.logger.Warn("wishlist-add-rolled-back",
			zap.String("listing-id", listingID),
			zap.Error(err))
		return fmt.Errorf("add to wishlist: %w", err)
	}

	// The cached fetch-all read is now stale.
	s.queries.Invalidate(fetchWishlistQuery, nil)
	return nil
}

// Remove optimistically unmarks the listing, then issues the remote
// mutation, rolling back on failure. Removing a non-member is a no-op.
func (s *Store) Remove(ctx context.Context, listingID string) error {
	s.mu.Lock()
	if _, busy := s.inflight[listingID]; busy {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	if _, ok := s.members[listingID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.members, listingID)
	s.inflight[listingID] = struct{}{}
	s.mu.Unlock()

	s.notify(listingID, false)
	ToggleTotal.WithLabelValues("remove").Inc()

	vars := map[string]interface{}{"listingId": listingID}
	_, err := s.queries.Request(ctx, removeFromWishlistMutation, vars, true)

	s.mu.Lock()
	delete(s.inflight, listingID)
	if err != nil {
		s.members[listingID] = struct{}{}
	}
	s.mu.Unlock()

	if err != nil {
		s.notify(listingID, true)
		RollbacksTotal.Inc()
		s.logger.Warn("wishlist-remove-rolled-back",
			zap.String("listing-id", listingID),
			zap.Error(err))
		return fmt.Errorf("remove from wishlist: %w", err)
	}

	s.queries.Invalidate(fetchWishlistQuery, nil)
	return nil
}

// Toggle routes to Add or Remove based on current membership.
func (s *Store) Toggle(ctx context.Context, listingID string) error {
	if s.IsMember(listingID) {
		return s.Remove(ctx, listingID)
	}
	return s.Add(ctx, listingID)
}

// IsMember reports whether the listing is currently wishlisted,
// including not-yet-confirmed optimistic state.
func (s *Store) IsMember(listingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[listingID]
	return ok
}

// Members returns the current membership as a sorted slice.
func (s *Store) Members() []string {
	s.mu.Lock()
	members := make([]string, 0, len(s.members))
	for id := range s.members {
		members = append(members, id)
	}
	s.mu.Unlock()

	sort.Strings(members)
	return members
}

// Len returns the current membership count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Clear empties the membership set and drops the cached fetch-all read.
// Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.members = make(map[string]struct{})
	s.inflight = make(map[string]struct{})
	s.mu.Unlock()

	s.queries.Invalidate(fetchWishlistQuery, nil)
	s.logger.Info("wishlist-cleared")
}

func (s *Store) notify(listingID string, member bool) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(listingID, member)
	}
}
