package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/owm-client/internal/weather"
)

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		s.SaveRecord("city:Kolkata", weather.Record{
			RequestID: string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}

	recs, err := s.GetRange("city:Kolkata", base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 || recs[0].RequestID != "b" || recs[1].RequestID != "c" {
		t.Fatalf("expected records b,c, got %+v", recs)
	}

	latest, err := s.GetLatest("city:Kolkata")
	if err != nil || latest.RequestID != "c" {
		t.Fatalf("expected latest c, got %+v %v", latest, err)
	}
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return now }

	s.SaveRecord("id:1", weather.Record{RequestID: "old", Timestamp: now.Add(-2 * time.Hour)})
	s.SaveRecord("id:1", weather.Record{RequestID: "new", Timestamp: now})

	recs, err := s.GetRange("id:1", now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].RequestID != "new" {
		t.Fatalf("expected only the new record, got %+v", recs)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore(10, 0)

	if _, err := s.GetLatest("none"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now().UTC()
	s.SaveRecord("none", weather.Record{Timestamp: now})
	if _, err := s.GetRange("none", now.Add(time.Minute), now.Add(time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty range, got %v", err)
	}
}
