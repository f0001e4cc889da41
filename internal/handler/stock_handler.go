package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/pkg/logger"
	"github.com/locduc071190/shopquanao/prometheus"
)

// StockMovementRequest is a manual inventory adjustment: positive change for
// restock, negative for shrinkage or damage.
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Change    int    `json:"change"`
	Reason    string `json:"reason"`
}

// CreateStockMovement handles a manual stock adjustment.
func CreateStockMovement(c echo.Context) error {
	log := logger.FromContext(c)

	var req StockMovementRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	movement, err := engine.AdjustStock(c.Request().Context(), req.ProductID, req.Change, req.Reason)
	if err != nil {
		log.Error("Failed to adjust stock",
			zap.String("product_id", req.ProductID),
			zap.Int("change", req.Change),
			zap.Error(err))
		return writeEngineError(c, err)
	}

	prometheus.RecordStockAdjustment(req.Change)
	if product, err := engine.GetProduct(c.Request().Context(), req.ProductID); err == nil {
		prometheus.UpdateProductInventory(product.ID, product.Name, product.Stock)
	}

	log.Info("Stock adjusted successfully",
		zap.String("product_id", req.ProductID),
		zap.Int("change", req.Change),
		zap.String("reason", req.Reason))
	return c.JSON(http.StatusCreated, movement)
}

// ListStockMovements handles retrieving the ledger, optionally filtered by
// the product_id query parameter.
func ListStockMovements(c echo.Context) error {
	log := logger.FromContext(c)

	movements, err := engine.ListStockMovements(c.Request().Context(), c.QueryParam("product_id"))
	if err != nil {
		log.Error("Failed to list stock movements", zap.Error(err))
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, movements)
}
