package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/owm-client/internal/store"
	"github.com/i474232898/owm-client/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, directory weather.Directory) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", fetchHandler(service, weather.EndpointCurrent))
	v1.Get("/weather/forecast", fetchHandler(service, weather.EndpointForecast))

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		q := req.Location.toParams().Query()
		records, err := service.GetRange(q, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no recorded outcomes for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read history")
		}

		return c.JSON(fiber.Map{
			"location": weather.QueryKey(q),
			"from":     req.From,
			"to":       req.To,
			"records":  records,
		})
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(directory.Entries())
	})
}

// fetchHandler relays the provider's response as-is, status included. Only a
// transport failure is turned into an error response.
func fetchHandler(service *weather.Service, ep weather.Endpoint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := service.FetchAndRecord(c.UserContext(), ep, locReq.toParams().Query())
		if res.Failed() {
			return fiber.NewError(fiber.StatusBadGateway, "weather provider unreachable")
		}

		c.Set("X-Upstream-Request-Id", res.RequestID)
		if res.ContentType != "" {
			c.Set(fiber.HeaderContentType, res.ContentType)
		}
		return c.Status(res.StatusCode).Send(res.Body)
	}
}

// locationQuery holds query parameters for identifying a location.
// Presence rules are left to weather.Params; only formats are checked here.
type locationQuery struct {
	ID       string `validate:"omitempty,numeric"`
	CityID   string `validate:"omitempty,numeric"`
	CityName string
	Lat      string `validate:"omitempty,latitude"`
	Lon      string `validate:"omitempty,longitude"`
}

func (l locationQuery) toParams() weather.Params {
	p := weather.Params{
		ID:       l.ID,
		CityID:   l.CityID,
		CityName: l.CityName,
	}
	// Both values are validated before conversion.
	p.Lat, _ = strconv.ParseFloat(l.Lat, 64)
	p.Lon, _ = strconv.ParseFloat(l.Lon, 64)
	return p
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.ID = c.Query("id")
	q.CityID = c.Query("cityid")
	q.CityName = c.Query("cityname")
	q.Lat = c.Query("lat")
	q.Lon = c.Query("lon")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
