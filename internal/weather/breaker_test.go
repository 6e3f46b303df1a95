package weather

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sony/gobreaker"
)

func TestBreakerOpensOnTransportErrorsOnly(t *testing.T) {
	calls := 0
	fail := true
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		calls++
		if fail {
			return nil, errors.New("connection refused")
		}
		return &http.Response{StatusCode: http.StatusNotFound}, nil
	})

	settings := DefaultBreakerSettings("test")
	settings.ReadyToTrip = func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 2 }
	b := NewBreakerDoer(next, settings)

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid", nil)

	fail = false
	for i := 0; i < 3; i++ {
		resp, err := b.Do(req)
		if err != nil || resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 passthrough, got %v %v", resp, err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Fatalf("HTTP error statuses must not trip the breaker, state %s", b.State())
	}

	fail = true
	for i := 0; i < 2; i++ {
		if _, err := b.Do(req); err == nil {
			t.Fatal("expected transport error")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", b.State())
	}

	before := calls
	_, err := b.Do(req)
	if !errors.Is(err, errCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls != before {
		t.Fatal("open breaker must not reach the transport")
	}
}
