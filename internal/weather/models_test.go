package weather

import (
	"errors"
	"testing"
	"time"
)

func TestQueryKey(t *testing.T) {
	tests := []struct {
		q    Query
		want string
	}{
		{ByID{ID: "1275004"}, "id:1275004"},
		{ByCityName{Name: "Kolkata"}, "city:Kolkata"},
		{ByCoordinates{Lat: 22.5, Lon: -88}, "coord:22.5,-88"},
		{nil, "none"},
	}
	for _, tt := range tests {
		if got := QueryKey(tt.q); got != tt.want {
			t.Errorf("QueryKey(%#v) = %s, want %s", tt.q, got, tt.want)
		}
	}
}

func TestParseEndpoint(t *testing.T) {
	for in, want := range map[string]Endpoint{
		"current":  EndpointCurrent,
		"weather":  EndpointCurrent,
		"forecast": EndpointForecast,
	} {
		got, err := ParseEndpoint(in)
		if err != nil || got != want {
			t.Errorf("ParseEndpoint(%s) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseEndpoint("onecall"); err == nil {
		t.Error("expected error for unknown endpoint")
	}
}

func TestNewRecord(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 19800))

	ok := NewRecord("city:Kolkata", Result{RequestID: "r1", Endpoint: EndpointCurrent, StatusCode: 404, Body: []byte("nope")}, at)
	if ok.Error != "" || ok.StatusCode != 404 || ok.Body != "nope" {
		t.Fatalf("unexpected success record: %+v", ok)
	}
	if ok.Timestamp.Location() != time.UTC {
		t.Fatal("expected UTC timestamp")
	}

	failed := NewRecord("none", Result{RequestID: "r2", Err: errors.New("dial tcp: refused")}, at)
	if failed.Error != "dial tcp: refused" || failed.StatusCode != 0 || failed.Body != "" {
		t.Fatalf("unexpected failure record: %+v", failed)
	}
}
