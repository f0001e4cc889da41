package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/locduc071190/shopquanao/internal/handler"
	"github.com/locduc071190/shopquanao/internal/inventory"
	"github.com/locduc071190/shopquanao/pkg/database"
)

// setupTestServer points the handlers at a throwaway sqlite store and returns
// a fully routed echo instance plus the engine for seeding fixtures.
func setupTestServer(t *testing.T) (*echo.Echo, *inventory.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	originalDB := database.GetDB()
	database.SetDB(db)

	eng := inventory.NewEngine(db, nil, nil)
	handler.SetEngine(eng)
	handler.SetReportCache(nil)

	t.Cleanup(func() {
		database.SetDB(originalDB)
	})

	e := echo.New()
	e.GET("/api/dashboard", handler.GetDashboard)
	e.GET("/api/reports/sales", handler.GetSalesReport)
	e.GET("/api/exports/orders.csv", handler.ExportOrderLog)
	e.GET("/api/exports/stock-movements.csv", handler.ExportStockMovementLog)
	e.GET("/api/products", handler.ListProducts)
	e.GET("/api/products/:id", handler.GetProduct)
	e.POST("/api/products", handler.CreateProduct)
	e.PUT("/api/products/:id", handler.UpdateProduct)
	e.GET("/api/orders", handler.ListOrders)
	e.GET("/api/orders/:id", handler.GetOrder)
	e.POST("/api/orders", handler.CreateOrder)
	e.GET("/api/stock-movements", handler.ListStockMovements)
	e.POST("/api/stock-movements", handler.CreateStockMovement)

	return e, eng
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, image []byte, imageName string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(image))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func seedProduct(t *testing.T, eng *inventory.Engine, name string, price, cost float64, stock int) string {
	t.Helper()
	p, err := eng.AddProduct(context.Background(), inventory.AddProductInput{
		Name: name, Price: price, CostPrice: cost, InitialStock: stock,
	})
	require.NoError(t, err)
	return p.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
