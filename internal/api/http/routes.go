package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/aerospotter/internal/airfield"
	"github.com/i474232898/aerospotter/internal/export"
	"github.com/i474232898/aerospotter/internal/metar"
	"github.com/i474232898/aerospotter/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/airports", func(c *fiber.Ctx) error {
		reg := service.Engine().Registry()
		out := make([]airportView, 0)
		for _, ap := range reg.Airports() {
			out = append(out, newAirportView(ap))
		}
		return c.JSON(fiber.Map{
			"airports": out,
			"aircraft": reg.Aircraft(),
		})
	})

	v1.Get("/airports/:code/assessment.geojson", func(c *fiber.Ctx) error {
		snap, err := service.Latest(c.UserContext(), c.Params("code"))
		if err != nil {
			return toFiberError(err)
		}
		data, err := export.GeoJSON(snap).MarshalJSON()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode geojson")
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(data)
	})

	v1.Get("/airports/:code/assessment", func(c *fiber.Ctx) error {
		snap, err := service.Latest(c.UserContext(), c.Params("code"))
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(snap)
	})

	v1.Post("/airports/:code/assessment", func(c *fiber.Ctx) error {
		var req assessRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap, err := service.Assess(c.Params("code"), req.Report, req.Time)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(snap)
	})
}

// assessRequest is the body for evaluating a caller-supplied report.
type assessRequest struct {
	Report string    `json:"report" validate:"required,max=512"`
	Time   time.Time `json:"time"`
}

type airportView struct {
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Center   airfield.LatLon     `json:"center"`
	TimeZone string              `json:"timeZone"`
	Policy   airfield.PolicyKind `json:"policy"`
	Runways  []airfield.RunwayID `json:"runways"`
}

func newAirportView(ap *airfield.AirportProfile) airportView {
	v := airportView{
		Code:     ap.Code,
		Name:     ap.Name,
		Center:   ap.Center,
		TimeZone: ap.Location.String(),
		Policy:   ap.Policy.Kind(),
	}
	for _, r := range ap.Runways {
		v.Runways = append(v.Runways, r.ID)
	}
	return v
}

// toFiberError maps domain errors onto HTTP status codes.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, airfield.ErrUnknownAirport):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, metar.ErrMalformedReport):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, weather.ErrFetch), errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusServiceUnavailable, weather.ErrFetch.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to evaluate weather data")
	}
}
