package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locduc071190/shopquanao/internal/model"
)

func TestCreateProductHandler(t *testing.T) {
	e, _ := setupTestServer(t)

	t.Run("creates a product with its seed movement", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
			"name":       "Shirt",
			"price":      "100",
			"cost_price": "60",
			"stock":      "10",
			"notes":      "summer collection",
		}, nil, "")
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var product model.Product
		decodeBody(t, rec, &product)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Shirt", product.Name)
		assert.Equal(t, 10, product.Stock)

		movRec := httptest.NewRecorder()
		e.ServeHTTP(movRec, httptest.NewRequest(http.MethodGet,
			"/api/stock-movements?product_id="+product.ID, nil))
		require.Equal(t, http.StatusOK, movRec.Code)
		var movements []model.StockMovement
		decodeBody(t, movRec, &movements)
		require.Len(t, movements, 1)
		assert.Equal(t, 10, movements[0].Change)
		assert.Equal(t, model.ReasonInitialImport, movements[0].Reason)
	})

	t.Run("rejects price below cost price", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
			"name":       "Bad",
			"price":      "50",
			"cost_price": "60",
		}, nil, "")
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a non-numeric price", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
			"name":  "Bad",
			"price": "not-a-number",
		}, nil, "")
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	e, eng := setupTestServer(t)
	id := seedProduct(t, eng, "Shirt", 100, 60, 10)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var product model.Product
	decodeBody(t, rec, &product)
	assert.Equal(t, "Shirt", product.Name)

	missing := httptest.NewRecorder()
	e.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/products/nope", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestListProductsHandler(t *testing.T) {
	e, eng := setupTestServer(t)
	seedProduct(t, eng, "Shirt", 100, 60, 10)
	seedProduct(t, eng, "Hat", 40, 25, 5)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []model.Product
	decodeBody(t, rec, &products)
	assert.Len(t, products, 2)
}

func TestUpdateProductHandler(t *testing.T) {
	e, eng := setupTestServer(t)
	id := seedProduct(t, eng, "Shirt", 100, 60, 10)

	rec := httptest.NewRecorder()
	req := multipartRequest(t, http.MethodPut, "/api/products/"+id, map[string]string{
		"name":       "Shirt Deluxe",
		"price":      "150",
		"cost_price": "60",
		"notes":      "restyled",
	}, nil, "")
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var product model.Product
	decodeBody(t, rec, &product)
	assert.Equal(t, "Shirt Deluxe", product.Name)
	assert.Equal(t, 150.0, product.Price)
	// Stock is not editable through this endpoint.
	assert.Equal(t, 10, product.Stock)

	missing := httptest.NewRecorder()
	e.ServeHTTP(missing, multipartRequest(t, http.MethodPut, "/api/products/nope", map[string]string{
		"name":       "X",
		"price":      "10",
		"cost_price": "5",
	}, nil, ""))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
