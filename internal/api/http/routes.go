package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dkhoward/weather-marine-mcp/internal/service"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Each route
// mirrors one tool operation; absent results come back as 404 with the
// structured error payload.
func RegisterRoutes(app *fiber.App, svc *service.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, errPayload := svc.CurrentConditions(c.Context(), req.Location)
		if errPayload != nil {
			return c.Status(fiber.StatusNotFound).JSON(errPayload)
		}
		return c.JSON(res)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, errPayload := svc.Forecast(c.Context(), req.Location)
		if errPayload != nil {
			return c.Status(fiber.StatusNotFound).JSON(errPayload)
		}
		return c.JSON(res)
	})

	v1.Get("/weather/radar", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, errPayload := svc.RadarInfo(c.Context(), req.Location)
		if errPayload != nil {
			return c.Status(fiber.StatusNotFound).JSON(errPayload)
		}
		return c.JSON(res)
	})

	v1.Get("/marine/current", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, errPayload := svc.MarineConditions(c.Context(), req.Location)
		if errPayload != nil {
			return c.Status(fiber.StatusNotFound).JSON(errPayload)
		}
		return c.JSON(res)
	})

	v1.Get("/marine/forecast", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := parseDaysQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, errPayload := svc.MarineForecast(c.Context(), req.Location, days)
		if errPayload != nil {
			return c.Status(fiber.StatusNotFound).JSON(errPayload)
		}
		return c.JSON(res)
	})
}

// locationQuery holds the query parameter identifying a location. The
// value may be a place name, "city, state" text, or a US postal code;
// classification happens in the resolver.
type locationQuery struct {
	Location string `validate:"required"`
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	q := locationQuery{Location: c.Query("location")}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// parseDaysQuery reads the optional days parameter. Out-of-range values
// are accepted here and clamped by the service; only non-numeric input is
// rejected.
func parseDaysQuery(c *fiber.Ctx) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return service.MaxForecastDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidDays
	}
	return days, nil
}

var errInvalidDays = fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
