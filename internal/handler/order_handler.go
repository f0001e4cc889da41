package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/internal/inventory"
	"github.com/locduc071190/shopquanao/pkg/logger"
	"github.com/locduc071190/shopquanao/prometheus"
)

// CreateOrderRequest is the POS checkout payload.
type CreateOrderRequest struct {
	Items []inventory.OrderLine `json:"items"`
}

// CreateOrder handles a POS checkout.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	order, err := engine.PlaceOrder(c.Request().Context(), req.Items)
	if err != nil {
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			prometheus.RecordOrderRejected()
			log.Warn("Order rejected for insufficient stock",
				zap.String("product_id", insufficient.ProductID),
				zap.Int("available", insufficient.Available),
				zap.Int("requested", insufficient.Requested))
		} else {
			log.Error("Failed to place order", zap.Error(err))
		}
		return writeEngineError(c, err)
	}

	prometheus.RecordOrderPlaced(order.Total)
	log.Info("Order placed successfully",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Float64("total", order.Total))
	return c.JSON(http.StatusCreated, order)
}

// ListOrders handles retrieving the order log, newest first.
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	orders, err := engine.ListOrders(c.Request().Context())
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving one order with its line items.
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	order, err := engine.GetOrder(c.Request().Context(), id)
	if err != nil {
		log.Warn("Order not found", zap.String("order_id", id), zap.Error(err))
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
