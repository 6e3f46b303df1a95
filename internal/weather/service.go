package weather

import (
	"context"
	"log"
	"time"
)

// Service issues requests through a Fetcher and records every outcome.
// Recorded outcomes are history only; they are never used to answer a fetch.
type Service struct {
	store   Store
	fetcher Fetcher
	now     func() time.Time
}

// NewService creates a new Service.
func NewService(store Store, fetcher Fetcher) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// FetchAndRecord performs one request for q and stores a summary of the result.
// The Result is returned unchanged.
func (s *Service) FetchAndRecord(ctx context.Context, ep Endpoint, q Query) Result {
	key := QueryKey(q)
	log.Printf("DEBUG: FetchAndRecord called for %s on %s", key, ep)

	res := s.fetcher.Fetch(ctx, ep, q)
	if res.Failed() {
		log.Printf("%s fetch failed for %s: %v", ep, key, res.Err)
	}

	s.store.SaveRecord(key, NewRecord(key, res, s.now()))
	return res
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(q Query) (Record, error) {
	return s.store.GetLatest(QueryKey(q))
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(q Query, from, to time.Time) ([]Record, error) {
	return s.store.GetRange(QueryKey(q), from, to)
}
