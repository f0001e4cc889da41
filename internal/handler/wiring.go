package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locduc071190/shopquanao/internal/inventory"
	"github.com/locduc071190/shopquanao/pkg/cache"
)

// Package-level collaborators, set once from main (or from test setup).
var (
	engine      *inventory.Engine
	reportCache *cache.Cache
)

// SetEngine installs the inventory engine the handlers dispatch to.
func SetEngine(e *inventory.Engine) {
	engine = e
}

// SetReportCache installs the optional report cache. A nil cache means every
// report request recomputes from a fresh snapshot.
func SetReportCache(c *cache.Cache) {
	reportCache = c
}

// writeEngineError maps the engine's error taxonomy onto HTTP responses.
func writeEngineError(c echo.Context, err error) error {
	var notFound *inventory.NotFoundError
	var insufficient *inventory.InsufficientStockError
	var invalid *inventory.ValidationError

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      insufficient.Error(),
			"product_id": insufficient.ProductID,
			"available":  insufficient.Available,
			"requested":  insufficient.Requested,
		})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
