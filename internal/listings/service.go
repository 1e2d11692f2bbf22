// Package listings exposes the marketplace read operations: search,
// listing detail, and categories, all served through the cached query
// client.
package listings

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/query"
	"github.com/RakanDouli/souq-client/pkg/cache"
)

const (
	searchListingsQuery = `query SearchListings($query: String, $categoryId: ID, $minPrice: Int, $maxPrice: Int, $sort: String, $limit: Int, $offset: Int) {
  listings(query: $query, categoryId: $categoryId, minPrice: $minPrice, maxPrice: $maxPrice, sort: $sort, limit: $limit, offset: $offset) {
    id title priceMinor currency location categoryId imageKeys specs
  }
}`

	listingDetailQuery = `query ListingDetail($id: ID!) {
  listing(id: $id) {
    id title priceMinor currency location categoryId imageKeys specs
  }
}`

	categoriesQuery = `query Categories { categories { id name slug } }`
)

// Service executes marketplace reads. Raw query results are memoized by
// the cached query client; decoded listing snapshots are additionally
// held in a snapshot cache so hot detail reads skip decoding.
type Service struct {
	queries   *query.CachedClient
	snapshots cache.Cache

	searchTTL   time.Duration
	detailTTL   time.Duration
	categoryTTL time.Duration

	logger *zap.Logger
}

// Config holds listings service configuration.
type Config struct {
	Queries     *query.CachedClient
	Snapshots   cache.Cache
	SearchTTL   time.Duration
	DetailTTL   time.Duration
	CategoryTTL time.Duration
	Logger      *zap.Logger
}

// New creates a listings service.
func New(cfg *Config) *Service {
	return &Service{
		queries:     cfg.Queries,
		snapshots:   cfg.Snapshots,
		searchTTL:   cfg.SearchTTL,
		detailTTL:   cfg.DetailTTL,
		categoryTTL: cfg.CategoryTTL,
		logger:      cfg.Logger,
	}
}

// Search returns listings matching the filter.
func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]ListingSnapshot, error) {
	data, err := s.queries.CachedRequest(ctx, searchListingsQuery, filter.variables(), s.searchTTL)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}

	var payload struct {
		Listings []ListingSnapshot `json:"listings"`
	}
	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	s.logger.Debug("listings-searched",
		zap.Int("count", len(payload.Listings)),
		zap.String("query", filter.Query))

	return payload.Listings, nil
}

// Get returns one listing by id, preferring the decoded snapshot cache.
func (s *Service) Get(ctx context.Context, id string) (*ListingSnapshot, error) {
	cacheKey := "listing:" + id
	if s.snapshots != nil {
		if cached, ok := s.snapshots.Get(cacheKey); ok {
			if snapshot, ok := cached.(*ListingSnapshot); ok {
				return snapshot, nil
			}
		}
	}

	vars := map[string]interface{}{"id": id}
	data, err := s.queries.CachedRequest(ctx, listingDetailQuery, vars, s.detailTTL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", id, err)
	}

	var payload struct {
		Listing *ListingSnapshot `json:"listing"`
	}
	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("decode listing %s: %w", id, err)
	}
	if payload.Listing == nil {
		return nil, fmt.Errorf("listing %s not found", id)
	}

	if s.snapshots != nil {
		s.snapshots.Set(cacheKey, payload.Listing, s.detailTTL)
	}

	return payload.Listing, nil
}

// Categories returns the category tree roots.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	data, err := s.queries.CachedRequest(ctx, categoriesQuery, nil, s.categoryTTL)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	var payload struct {
		Categories []Category `json:"categories"`
	}
	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	return payload.Categories, nil
}
