package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"app/config"
	"app/forecast"
	"app/store"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleGetForecast runs the full demand forecast pipeline for a product.
// GET /api/v1/forecast?product_type=&store_name=&horizon=&safety_stock=
func HandleGetForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	productType := c.Query("product_type")
	if productType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "product_type is required"})
	}

	var storeName *string
	if s := c.Query("store_name"); s != "" {
		storeName = &s
	}

	horizon := c.QueryInt("horizon", config.AppConfig.DefaultHorizon)
	if horizon < 1 || horizon > forecast.MaxHorizon {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "horizon must be between 1 and " + strconv.Itoa(forecast.MaxHorizon),
		})
	}

	safetyStock, err := strconv.ParseFloat(c.Query("safety_stock", "0"), 64)
	if err != nil || safetyStock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "safety_stock must be a non-negative number"})
	}

	log.Printf("📈 [FORECAST] Request - Product: %s, Store: %s, Horizon: %d, SafetyStock: %g",
		productType, utils.PointerToString(storeName), horizon, safetyStock)

	result, err := store.RunForecast(ctx, productType, storeName, forecast.Options{
		Horizon:     horizon,
		SafetyStock: safetyStock,
		NumSamples:  config.AppConfig.NumSamples,
		Seed:        config.AppConfig.RandomSeed,
		MinDays:     config.AppConfig.MinDemandDays,
	})
	if err != nil {
		return forecastErrorResponse(c, err)
	}

	log.Printf("✅ [FORECAST] Product: %s, restock median: %s, paths within horizon: %d/%d",
		productType, result.RestockDateMedian, result.PathsWithinHorizon, config.AppConfig.NumSamples)
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// HandleGetForecastableProducts lists product types with enough AM+EOD
// history to forecast.
// GET /api/v1/forecast/products?store_name=
func HandleGetForecastableProducts(c *fiber.Ctx) error {
	ctx := context.Background()

	var storeName *string
	if s := c.Query("store_name"); s != "" {
		storeName = &s
	}

	products, err := store.ForecastableProducts(ctx, storeName, config.AppConfig.MinDemandDays)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to list forecastable products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list forecastable products"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"product_types": products}})
}

// forecastErrorResponse maps the core's typed failures onto HTTP statuses.
// Each outcome stays distinct for the caller; nothing collapses into a
// misleading zero-value forecast.
func forecastErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, forecast.ErrInsufficientHistory):
		log.Printf("⚠️  [FORECAST] %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, forecast.ErrInvalidParameter):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, forecast.ErrModelFit):
		log.Printf("❌ [FORECAST] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		log.Printf("❌ [FORECAST] Unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to run forecast"})
	}
}
