package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/internal/model"
	"github.com/locduc071190/shopquanao/internal/report"
	"github.com/locduc071190/shopquanao/pkg/database"
	"github.com/locduc071190/shopquanao/pkg/logger"
)

// GetSalesReport recomputes the sales rollup from a fresh snapshot. With a
// cache configured the serialized report is served from Redis until the next
// write invalidates it.
func GetSalesReport(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	if reportCache != nil {
		cached, err := reportCache.GetReport(ctx)
		if err != nil {
			log.Warn("Report cache read failed", zap.Error(err))
		} else if cached != nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	snap, err := report.LoadSnapshot(ctx, database.GetDB())
	if err != nil {
		log.Error("Failed to load report snapshot", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute report"})
	}
	rep := report.Compute(snap)

	if reportCache != nil {
		data, err := json.Marshal(rep)
		if err == nil {
			if err := reportCache.SetReport(ctx, data); err != nil {
				log.Warn("Report cache write failed", zap.Error(err))
			}
		}
	}

	log.Info("Sales report computed",
		zap.Int("orders", rep.TotalOrders),
		zap.Float64("revenue", rep.TotalRevenue))
	return c.JSON(http.StatusOK, rep)
}

// DashboardResponse carries the front-page totals.
type DashboardResponse struct {
	TotalProducts int64 `json:"total_products"`
	TotalOrders   int64 `json:"total_orders"`
	TotalStock    int64 `json:"total_stock"`
}

// GetDashboard returns product count, order count and units on hand.
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB().WithContext(c.Request().Context())

	var resp DashboardResponse
	if err := db.Model(&model.Product{}).Count(&resp.TotalProducts).Error; err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	if err := db.Model(&model.Order{}).Count(&resp.TotalOrders).Error; err != nil {
		log.Error("Failed to count orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}
	if err := db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock), 0)").Scan(&resp.TotalStock).Error; err != nil {
		log.Error("Failed to sum stock", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(http.StatusOK, resp)
}
