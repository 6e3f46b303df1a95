package weather

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the OpenWeatherMap data API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SuccessFunc receives the raw body of any response the provider returned.
type SuccessFunc func(body []byte)

// FailureFunc receives the transport's response, usually nil, and its error.
type FailureFunc func(resp *http.Response, err error)

// Client issues single GET requests against the current conditions and
// forecast endpoints. It holds no mutable state and is safe for concurrent use.
type Client struct {
	credential string
	baseURL    string
	directory  Directory
	doer       Doer
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithDirectory(d Directory) Option {
	return func(c *Client) { c.directory = d }
}

// WithDoer replaces the transport. Timeouts are whatever the transport has.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client authenticating with credential.
func NewClient(credential string, opts ...Option) *Client {
	c := &Client{
		credential: credential,
		baseURL:    DefaultBaseURL,
		directory:  DefaultDirectory(),
		doer:       &http.Client{},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Directory returns the city directory used for name lookups.
func (c *Client) Directory() Directory {
	return c.directory
}

// Resolve builds the request payload for q. It never fails: an unknown city
// or a nil query yields a payload without a location and the provider is left
// to reject it.
func (c *Client) Resolve(q Query) Payload {
	p := Payload{AppID: c.credential}

	switch q := q.(type) {
	case ByID:
		p.ID = q.ID
	case ByCityName:
		if id, ok := c.directory.Lookup(q.Name); ok {
			p.ID = id
		} else {
			c.logger.Printf("DEBUG: city %q is not in the directory; sending request without id", q.Name)
		}
	case ByCoordinates:
		lat, lon := q.Lat, q.Lon
		p.Lat, p.Lon = &lat, &lon
	case nil:
	}

	return p
}

// Fetch performs one GET against ep for q and returns its outcome. Only
// transport errors produce a failed Result; HTTP error statuses do not.
func (c *Client) Fetch(ctx context.Context, ep Endpoint, q Query) Result {
	res := Result{
		RequestID: uuid.NewString(),
		Endpoint:  ep,
	}

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, ep, c.Resolve(q).Values().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return c.fail(res, nil, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return c.fail(res, resp, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(res, resp, fmt.Errorf("reading response: %w", err))
	}

	res.StatusCode = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")
	res.Body = body
	return res
}

func (c *Client) fail(res Result, resp *http.Response, err error) Result {
	c.logger.Printf("ERROR: %s request %s failed: %v", res.Endpoint, res.RequestID, err)
	res.Response = resp
	res.Err = err
	return res
}

// CurrentWeather fetches current conditions for q.
func (c *Client) CurrentWeather(ctx context.Context, q Query) Result {
	return c.Fetch(ctx, EndpointCurrent, q)
}

// Forecast fetches the multi-day forecast for q.
func (c *Client) Forecast(ctx context.Context, q Query) Result {
	return c.Fetch(ctx, EndpointForecast, q)
}

// Go runs Fetch in a new goroutine. The returned channel receives exactly one
// Result and is then closed.
func (c *Client) Go(ctx context.Context, ep Endpoint, q Query) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.Fetch(ctx, ep, q)
	}()
	return ch
}

// FetchCurrentWeather fetches current conditions without blocking and invokes
// exactly one of the callbacks when the request completes.
func (c *Client) FetchCurrentWeather(ctx context.Context, q Query, onSuccess SuccessFunc, onFailure FailureFunc) {
	c.dispatch(ctx, EndpointCurrent, q, onSuccess, onFailure)
}

// FetchForecast is FetchCurrentWeather for the forecast endpoint.
func (c *Client) FetchForecast(ctx context.Context, q Query, onSuccess SuccessFunc, onFailure FailureFunc) {
	c.dispatch(ctx, EndpointForecast, q, onSuccess, onFailure)
}

func (c *Client) dispatch(ctx context.Context, ep Endpoint, q Query, onSuccess SuccessFunc, onFailure FailureFunc) {
	go func() {
		res := c.Fetch(ctx, ep, q)
		if res.Failed() {
			if onFailure != nil {
				onFailure(res.Response, res.Err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(res.Body)
		}
	}()
}
