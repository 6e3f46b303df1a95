package weather

import (
	"context"
	"time"
)

// Fetcher performs one request against an endpoint. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, ep Endpoint, q Query) Result
}

// Store is the contract the in-memory outcome store (and any future persistent store) must satisfy.
type Store interface {
	SaveRecord(key string, rec Record)
	GetLatest(key string) (Record, error)
	GetRange(key string, from, to time.Time) ([]Record, error)
}
