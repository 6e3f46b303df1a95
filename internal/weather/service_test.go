package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	result Result
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, ep Endpoint, q Query) Result {
	f.calls++
	res := f.result
	res.Endpoint = ep
	return res
}

type fakeStore struct {
	saved map[string][]Record
}

func (s *fakeStore) SaveRecord(key string, rec Record) {
	if s.saved == nil {
		s.saved = make(map[string][]Record)
	}
	s.saved[key] = append(s.saved[key], rec)
}

func (s *fakeStore) GetLatest(key string) (Record, error) {
	recs := s.saved[key]
	if len(recs) == 0 {
		return Record{}, errors.New("not found")
	}
	return recs[len(recs)-1], nil
}

func (s *fakeStore) GetRange(key string, from, to time.Time) ([]Record, error) {
	return s.saved[key], nil
}

func TestFetchAndRecordStoresEveryOutcome(t *testing.T) {
	fetcher := &fakeFetcher{result: Result{RequestID: "a", StatusCode: 401, Body: []byte(`{"cod":401}`)}}
	st := &fakeStore{}
	svc := NewService(st, fetcher)

	q := ByCityName{Name: "Haldia"}
	res := svc.FetchAndRecord(context.Background(), EndpointForecast, q)
	if res.Failed() || res.StatusCode != 401 {
		t.Fatalf("result must be returned unchanged, got %+v", res)
	}

	fetcher.result = Result{RequestID: "b", Err: errors.New("timeout")}
	svc.FetchAndRecord(context.Background(), EndpointCurrent, q)

	recs := st.saved["city:Haldia"]
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Endpoint != EndpointForecast || recs[0].StatusCode != 401 {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Error != "timeout" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}

	latest, err := svc.GetLatest(q)
	if err != nil || latest.RequestID != "b" {
		t.Fatalf("expected latest record b, got %+v %v", latest, err)
	}
}
