package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/internal/inventory"
	"github.com/locduc071190/shopquanao/pkg/logger"
	"github.com/locduc071190/shopquanao/prometheus"
)

// ListProducts handles retrieving the catalog
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := engine.ListProducts(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return writeEngineError(c, err)
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, err := engine.GetProduct(c.Request().Context(), id)
	if err != nil {
		log.Warn("Product not found", zap.String("product_id", id), zap.Error(err))
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new catalog entry from a multipart form:
// name, price, cost_price, stock, notes plus an optional image file.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	in := inventory.AddProductInput{
		Name:  c.FormValue("name"),
		Notes: c.FormValue("notes"),
	}

	var err error
	if in.Price, err = parseAmount(c.FormValue("price")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}
	if in.CostPrice, err = parseAmount(c.FormValue("cost_price")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cost_price"})
	}
	if stock := c.FormValue("stock"); stock != "" {
		if in.InitialStock, err = strconv.Atoi(stock); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stock"})
		}
	}
	if in.Image, in.ImageExt, err = readImageUpload(c); err != nil {
		log.Error("Reading image upload failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image upload"})
	}

	product, err := engine.AddProduct(c.Request().Context(), in)
	if err != nil {
		log.Error("Failed to create product", zap.String("name", in.Name), zap.Error(err))
		return writeEngineError(c, err)
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductInventory(product.ID, product.Name, product.Stock)
	log.Info("Product created successfully",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles editing product metadata and pricing. Stock is not
// editable here; that goes through stock movements.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))

	in := inventory.UpdateProductInput{
		Name:  c.FormValue("name"),
		Notes: c.FormValue("notes"),
	}

	var err error
	if in.Price, err = parseAmount(c.FormValue("price")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}
	if in.CostPrice, err = parseAmount(c.FormValue("cost_price")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cost_price"})
	}
	if remove := c.FormValue("remove_image"); remove != "" {
		if in.RemoveImage, err = strconv.ParseBool(remove); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid remove_image"})
		}
	}
	if in.Image, in.ImageExt, err = readImageUpload(c); err != nil {
		log.Error("Reading image upload failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image upload"})
	}

	product, err := engine.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return writeEngineError(c, err)
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// ProductImage serves the stored image of a product.
func ProductImage(c echo.Context) error {
	id := c.Param("id")

	product, err := engine.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}
	if product.ImagePath == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product has no image"})
	}
	return c.File(product.ImagePath)
}

func parseAmount(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

func readImageUpload(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file attached is the common case.
		return nil, "", nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Ext(fh.Filename), nil
}
