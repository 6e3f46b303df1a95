package weather

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var errCircuitOpen = errors.New("circuit breaker open")

// BreakerDoer wraps a Doer with a circuit breaker. Only transport errors count
// as failures; any HTTP response, whatever its status, is a success. While the
// circuit is open requests fail locally without reaching the network.
type BreakerDoer struct {
	next    Doer
	circuit *gobreaker.CircuitBreaker
}

// DefaultBreakerSettings returns the settings used when the breaker is enabled.
func DefaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	}
}

func NewBreakerDoer(next Doer, settings gobreaker.Settings) *BreakerDoer {
	return &BreakerDoer{
		next:    next,
		circuit: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerDoer) Do(req *http.Request) (*http.Response, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		return b.next.Do(req)
	})

	resp, _ := result.(*http.Response)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return resp, err
	}
	return resp, nil
}

// State reports the breaker state.
func (b *BreakerDoer) State() gobreaker.State {
	return b.circuit.State()
}
