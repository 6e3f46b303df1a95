// Command owm-fetch performs a single request and writes the raw provider
// body to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/i474232898/owm-client/internal/config"
	"github.com/i474232898/owm-client/internal/weather"
)

func main() {
	var (
		endpoint = flag.String("endpoint", "current", "endpoint to query: current or forecast")
		params   weather.Params
	)
	flag.StringVar(&params.ID, "id", "", "set to select lookup by location id (value taken from -cityid)")
	flag.StringVar(&params.CityID, "cityid", "", "provider location id")
	flag.StringVar(&params.CityName, "cityname", "", "city name from the directory")
	flag.Float64Var(&params.Lat, "lat", 0, "latitude")
	flag.Float64Var(&params.Lon, "lon", 0, "longitude")
	flag.Parse()

	ep, err := weather.ParseEndpoint(*endpoint)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	directory, err := cfg.Directory()
	if err != nil {
		log.Fatalf("failed to load city directory: %v", err)
	}

	client := weather.NewClient(cfg.OpenWeatherAPIKey,
		weather.WithBaseURL(cfg.BaseURL),
		weather.WithDirectory(directory),
		weather.WithDoer(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	res := <-client.Go(context.Background(), ep, params.Query())
	if res.Failed() {
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, string(res.Body))
}
