package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/internal/report"
	"github.com/locduc071190/shopquanao/pkg/database"
	"github.com/locduc071190/shopquanao/pkg/logger"
)

// ExportOrderLog streams the detailed order log as CSV.
func ExportOrderLog(c echo.Context) error {
	return streamCSV(c, "shop_orders_detail_log.csv", report.OrderLog)
}

// ExportStockMovementLog streams the inventory ledger as CSV.
func ExportStockMovementLog(c echo.Context) error {
	return streamCSV(c, "shop_stock_movements_log.csv", report.StockMovementLog)
}

func streamCSV(c echo.Context, filename string, build func(*report.Snapshot) *report.Table) error {
	log := logger.FromContext(c)

	snap, err := report.LoadSnapshot(c.Request().Context(), database.GetDB())
	if err != nil {
		log.Error("Failed to load export snapshot", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build export"})
	}
	table := build(snap)

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(table.Header); err != nil {
		return err
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return err
	}
	w.Flush()

	log.Info("Export streamed",
		zap.String("filename", filename),
		zap.Int("rows", len(table.Rows)))
	return w.Error()
}
