package weather

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Endpoint names one of the read-only OpenWeatherMap data endpoints.
type Endpoint string

const (
	EndpointCurrent  Endpoint = "weather"
	EndpointForecast Endpoint = "forecast"
)

// ParseEndpoint accepts the endpoint path segment or its short alias.
func ParseEndpoint(s string) (Endpoint, error) {
	switch s {
	case "current", string(EndpointCurrent):
		return EndpointCurrent, nil
	case string(EndpointForecast):
		return EndpointForecast, nil
	default:
		return "", fmt.Errorf("unknown endpoint %q", s)
	}
}

// Query selects a location. It is one of ByID, ByCityName or ByCoordinates;
// a nil Query means no location was given.
type Query interface {
	isQuery()
}

// ByID addresses a location by its provider location id.
type ByID struct {
	ID string
}

// ByCityName addresses a location by a name from the city directory.
type ByCityName struct {
	Name string
}

// ByCoordinates addresses a location by latitude and longitude.
type ByCoordinates struct {
	Lat float64
	Lon float64
}

func (ByID) isQuery()          {}
func (ByCityName) isQuery()    {}
func (ByCoordinates) isQuery() {}

// QueryKey returns a canonical string key for indexing outcomes of q.
func QueryKey(q Query) string {
	switch q := q.(type) {
	case ByID:
		return "id:" + q.ID
	case ByCityName:
		return "city:" + q.Name
	case ByCoordinates:
		return "coord:" + formatCoord(q.Lat) + "," + formatCoord(q.Lon)
	default:
		return "none"
	}
}

// Params is the loose query shape accepted by the outer surfaces.
//
// Resolution order is id, then cityname, then lat/lon; the first present
// field wins. When id is set the value forwarded to the provider is CityID,
// not ID. Existing callers send both fields and depend on that mapping.
// Lat and Lon count as present only when both are non-zero.
type Params struct {
	ID       string
	CityID   string
	CityName string
	Lat      float64
	Lon      float64
}

// Query converts p into a typed Query, or nil when no location is present.
func (p Params) Query() Query {
	switch {
	case p.ID != "":
		return ByID{ID: p.CityID}
	case p.CityName != "":
		return ByCityName{Name: p.CityName}
	case present(p.Lat) && present(p.Lon):
		return ByCoordinates{Lat: p.Lat, Lon: p.Lon}
	default:
		return nil
	}
}

func present(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// Payload is the set of query parameters sent with one request.
type Payload struct {
	AppID string
	ID    string
	Lat   *float64
	Lon   *float64
}

// Values encodes the payload. appid is always present; an empty id is omitted.
func (p Payload) Values() url.Values {
	values := url.Values{}
	values.Set("appid", p.AppID)
	if p.ID != "" {
		values.Set("id", p.ID)
	}
	if p.Lat != nil && p.Lon != nil {
		values.Set("lat", formatCoord(*p.Lat))
		values.Set("lon", formatCoord(*p.Lon))
	}
	return values
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Result is the outcome of a single request. Exactly one of the two shapes is
// populated: on success StatusCode and Body hold whatever the provider sent,
// including error statuses; on a transport failure Err is set and Response
// holds whatever response the transport produced, which is usually nil.
type Result struct {
	RequestID string
	Endpoint  Endpoint

	StatusCode  int
	ContentType string
	Body        []byte

	Response *http.Response
	Err      error
}

// Failed reports whether the round-trip failed at the transport level.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Record is the stored summary of one request outcome.
type Record struct {
	RequestID  string    `json:"requestId"`
	Location   string    `json:"location"`
	Endpoint   Endpoint  `json:"endpoint"`
	Timestamp  time.Time `json:"timestamp"` // always UTC
	StatusCode int       `json:"statusCode,omitempty"`
	Body       string    `json:"body,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// NewRecord summarises res for the location identified by key.
func NewRecord(key string, res Result, at time.Time) Record {
	rec := Record{
		RequestID: res.RequestID,
		Location:  key,
		Endpoint:  res.Endpoint,
		Timestamp: at.UTC(),
	}
	if res.Failed() {
		rec.Error = res.Err.Error()
		return rec
	}
	rec.StatusCode = res.StatusCode
	rec.Body = string(res.Body)
	return rec
}
