package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/locduc071190/shopquanao/internal/blob"
	"github.com/locduc071190/shopquanao/internal/model"
	"github.com/locduc071190/shopquanao/pkg/logger"
)

// ReportCache is notified after every successful mutation so the next report
// read reflects the write.
type ReportCache interface {
	Invalidate(ctx context.Context) error
}

// Engine owns the inventory consistency rules: every stock change goes
// through the movement ledger, and order placement is a single all-or-nothing
// transaction. The engine assumes a single writer; two concurrent orders
// against the same product can both pass validation and oversell (see
// PlaceOrder).
type Engine struct {
	db    *gorm.DB
	blobs *blob.Store
	cache ReportCache
	log   *zap.Logger
}

// NewEngine wires the engine to its collaborators. The blob store and the
// report cache may be nil; image handling and cache invalidation become
// no-ops.
func NewEngine(db *gorm.DB, blobs *blob.Store, cache ReportCache) *Engine {
	return &Engine{
		db:    db,
		blobs: blobs,
		cache: cache,
		log:   logger.GetLogger(),
	}
}

// AddProductInput carries the fields of a new catalog entry. Image is the raw
// upload; ImageExt is the original filename extension, dot included.
type AddProductInput struct {
	Name         string
	Price        float64
	CostPrice    float64
	InitialStock int
	Notes        string
	Image        []byte
	ImageExt     string
}

// UpdateProductInput carries a metadata/pricing edit. RemoveImage clears the
// current image; a non-empty Image replaces it. Both may be set, in which
// case the old image is removed and the new one stored.
type UpdateProductInput struct {
	Name        string
	Price       float64
	CostPrice   float64
	Notes       string
	Image       []byte
	ImageExt    string
	RemoveImage bool
}

// OrderLine is one requested product/quantity pair of a checkout.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func validateProductFields(name string, price, costPrice float64) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "product name is required"}
	}
	if price < 0 || costPrice < 0 {
		return &ValidationError{Field: "price", Reason: "prices must not be negative"}
	}
	if price < costPrice {
		return &ValidationError{Field: "price", Reason: "selling price must not be below cost price"}
	}
	return nil
}

// appendMovement writes one ledger entry. It never touches the product's
// stock balance; callers that need the balance updated do that themselves in
// the same transaction.
func appendMovement(tx *gorm.DB, productID string, change int, reason string, at time.Time) (*model.StockMovement, error) {
	m := &model.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Change:    change,
		Reason:    reason,
		Timestamp: at,
	}
	if err := tx.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// AddProduct creates a catalog entry with its stock already set and seeds the
// ledger with an "Initial / Import" movement. The movement is ledger-only:
// the product row carries its final stock, so applying the delta again would
// double-count. A zero initial stock still gets its seed entry.
func (e *Engine) AddProduct(ctx context.Context, in AddProductInput) (*model.Product, error) {
	if err := validateProductFields(in.Name, in.Price, in.CostPrice); err != nil {
		return nil, err
	}
	if in.InitialStock < 0 {
		return nil, &ValidationError{Field: "stock", Reason: "initial stock must not be negative"}
	}

	imagePath := ""
	if len(in.Image) > 0 && e.blobs != nil {
		path, err := e.blobs.Save(in.Image, in.ImageExt)
		if err != nil {
			return nil, fmt.Errorf("saving product image: %w", err)
		}
		imagePath = path
	}

	product := &model.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		CostPrice: in.CostPrice,
		Stock:     in.InitialStock,
		ImagePath: imagePath,
		Notes:     in.Notes,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		_, err := appendMovement(tx, product.ID, in.InitialStock, model.ReasonInitialImport, time.Now().UTC())
		return err
	})
	if err != nil {
		if imagePath != "" {
			e.deleteBlob(imagePath)
		}
		return nil, fmt.Errorf("creating product: %w", err)
	}

	e.invalidateCache(ctx)
	e.log.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("initial_stock", in.InitialStock))
	return product, nil
}

// UpdateProduct edits metadata and pricing. It never changes stock and never
// writes a movement.
func (e *Engine) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*model.Product, error) {
	if err := validateProductFields(in.Name, in.Price, in.CostPrice); err != nil {
		return nil, err
	}

	var product model.Product
	if err := e.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}

	oldImage := product.ImagePath
	if in.RemoveImage && oldImage != "" {
		e.deleteBlob(oldImage)
		product.ImagePath = ""
		oldImage = ""
	}
	if len(in.Image) > 0 && e.blobs != nil {
		if oldImage != "" {
			e.deleteBlob(oldImage)
		}
		path, err := e.blobs.Save(in.Image, in.ImageExt)
		if err != nil {
			return nil, fmt.Errorf("saving product image: %w", err)
		}
		product.ImagePath = path
	}

	product.Name = in.Name
	product.Price = in.Price
	product.CostPrice = in.CostPrice
	product.Notes = in.Notes

	if err := e.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	e.invalidateCache(ctx)
	e.log.Info("product updated",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price),
		zap.Float64("cost_price", product.CostPrice))
	return &product, nil
}

// AdjustStock applies a manual stock correction: the product balance and the
// ledger entry commit together or not at all. The delta may drive stock
// negative; discovering shrinkage before recording it is a legal state. Only
// order placement enforces a floor.
func (e *Engine) AdjustStock(ctx context.Context, productID string, delta int, reason string) (*model.StockMovement, error) {
	if delta == 0 {
		return nil, &ValidationError{Field: "change", Reason: "zero-quantity adjustment has no effect"}
	}

	var movement *model.StockMovement
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "product", ID: productID}
			}
			return err
		}

		newStock := product.Stock + delta
		if err := tx.Model(&model.Product{}).Where("id = ?", productID).
			Update("stock", newStock).Error; err != nil {
			return err
		}

		var err error
		movement, err = appendMovement(tx, productID, delta, reason, time.Now().UTC())
		return err
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, nf
		}
		return nil, fmt.Errorf("adjusting stock: %w", err)
	}

	e.invalidateCache(ctx)
	e.log.Info("stock adjusted",
		zap.String("product_id", productID),
		zap.Int("change", delta),
		zap.String("reason", reason))
	return movement, nil
}

// PlaceOrder runs a checkout as one transaction. Pass one validates every
// line against current stock before anything is touched, so a rejected later
// line cannot leave earlier lines half-applied. Pass two, in input order,
// decrements stock, snapshots the product's current prices into an OrderItem
// and appends a "Sale" movement; the order header is written last. Every row
// shares a single timestamp. The read-then-write on stock is not guarded
// against concurrent writers beyond the transaction itself.
func (e *Engine) PlaceOrder(ctx context.Context, lines []OrderLine) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "order must contain at least one line"}
	}
	for _, ln := range lines {
		if ln.Qty <= 0 {
			return nil, &ValidationError{Field: "qty", Reason: "quantity must be positive"}
		}
	}

	order := &model.Order{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := make(map[string]*model.Product, len(lines))
		for _, ln := range lines {
			if _, ok := products[ln.ProductID]; ok {
				continue
			}
			var p model.Product
			if err := tx.First(&p, "id = ?", ln.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "product", ID: ln.ProductID}
				}
				return err
			}
			products[ln.ProductID] = &p
		}
		for _, ln := range lines {
			p := products[ln.ProductID]
			if ln.Qty > p.Stock {
				return &InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   ln.Qty,
				}
			}
		}

		for _, ln := range lines {
			p := products[ln.ProductID]
			p.Stock -= ln.Qty
			if err := tx.Model(&model.Product{}).Where("id = ?", p.ID).
				Update("stock", p.Stock).Error; err != nil {
				return err
			}

			item := model.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: p.ID,
				Qty:       ln.Qty,
				Price:     p.Price,
				CostPrice: p.CostPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			if _, err := appendMovement(tx, p.ID, -ln.Qty, model.ReasonSale, order.CreatedAt); err != nil {
				return err
			}

			order.Total += p.Price * float64(ln.Qty)
			order.Items = append(order.Items, item)
		}

		// Header last: a crash mid-order leaves inventory correct with an
		// order "missing", never an order against phantom stock.
		return tx.Omit("Items").Create(order).Error
	})
	if err != nil {
		var nf *NotFoundError
		var is *InsufficientStockError
		if errors.As(err, &nf) || errors.As(err, &is) {
			return nil, err
		}
		return nil, fmt.Errorf("placing order: %w", err)
	}

	e.invalidateCache(ctx)
	e.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Float64("total", order.Total))
	return order, nil
}

// GetProduct returns one catalog entry.
func (e *Engine) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := e.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, fmt.Errorf("loading product: %w", err)
	}
	return &product, nil
}

// ListProducts returns the catalog in creation order.
func (e *Engine) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := e.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// GetOrder returns an order header with its line items.
func (e *Engine) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := e.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: id}
		}
		return nil, fmt.Errorf("loading order: %w", err)
	}
	return &order, nil
}

// ListOrders returns all orders with their items, newest first.
func (e *Engine) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := e.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// ListStockMovements returns ledger entries, newest first, optionally
// filtered to one product.
func (e *Engine) ListStockMovements(ctx context.Context, productID string) ([]model.StockMovement, error) {
	query := e.db.WithContext(ctx)
	if productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	var movements []model.StockMovement
	if err := query.Order("timestamp DESC").Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("listing stock movements: %w", err)
	}
	return movements, nil
}

func (e *Engine) invalidateCache(ctx context.Context) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(ctx); err != nil {
		e.log.Warn("report cache invalidation failed", zap.Error(err))
	}
}

func (e *Engine) deleteBlob(path string) {
	if e.blobs == nil {
		return
	}
	if err := e.blobs.Delete(path); err != nil {
		e.log.Warn("removing product image failed",
			zap.String("path", path), zap.Error(err))
	}
}
