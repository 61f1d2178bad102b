package handlers

import (
	"net/http/httptest"
	"testing"

	"app/config"
	"app/forecast"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newForecastTestApp() *fiber.App {
	config.AppConfig.DefaultHorizon = forecast.DefaultHorizon
	config.AppConfig.NumSamples = forecast.DefaultNumSamples
	config.AppConfig.RandomSeed = forecast.DefaultSeed
	config.AppConfig.MinDemandDays = forecast.MinDemandDays

	app := fiber.New()
	app.Get("/api/v1/forecast", HandleGetForecast)
	return app
}

func TestForecastRequiresProductType(t *testing.T) {
	app := newForecastTestApp()

	req := httptest.NewRequest("GET", "/api/v1/forecast", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestForecastRejectsOutOfRangeHorizon(t *testing.T) {
	app := newForecastTestApp()

	req := httptest.NewRequest("GET", "/api/v1/forecast?product_type=canned_beans&horizon=200", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/forecast?product_type=canned_beans&horizon=0", nil)
	resp, _ = app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestForecastRejectsNegativeSafetyStock(t *testing.T) {
	app := newForecastTestApp()

	req := httptest.NewRequest("GET", "/api/v1/forecast?product_type=canned_beans&safety_stock=-2", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestForecastErrorResponseMapping(t *testing.T) {
	app := fiber.New()
	app.Get("/insufficient", func(c *fiber.Ctx) error {
		return forecastErrorResponse(c, &forecast.InsufficientHistoryError{Got: 1, Need: 2})
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return forecastErrorResponse(c, &forecast.InvalidParameterError{Name: "horizon", Reason: "out of range"})
	})
	app.Get("/fit", func(c *fiber.Ctx) error {
		return forecastErrorResponse(c, &forecast.ModelFitError{Reason: "degenerate series"})
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/insufficient", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/invalid", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest("GET", "/fit", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
