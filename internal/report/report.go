// Package report derives sales figures from a read-only snapshot of the four
// collections. Computation is pure: no mutation, recomputed on every read,
// and an empty snapshot yields a zeroed report.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/locduc071190/shopquanao/internal/model"
)

// TopProductsLimit bounds the best-seller list.
const TopProductsLimit = 5

// Snapshot is a point-in-time read of all four collections.
type Snapshot struct {
	Products  []model.Product
	Orders    []model.Order
	Items     []model.OrderItem
	Movements []model.StockMovement
}

// LoadSnapshot reads all four collections in one pass.
func LoadSnapshot(ctx context.Context, db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := db.WithContext(ctx).Find(&snap.Products).Error; err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Orders).Error; err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Items).Error; err != nil {
		return nil, fmt.Errorf("loading order items: %w", err)
	}
	if err := db.WithContext(ctx).Find(&snap.Movements).Error; err != nil {
		return nil, fmt.Errorf("loading stock movements: %w", err)
	}
	return snap, nil
}

// DateBucket is one calendar day of sales.
type DateBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// ProductSales ranks a product by units sold with its profit contribution.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	QtySold   int     `json:"qty_sold"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
}

// OrderSummary is one row of the per-order rollup. Items is a human-readable
// "Name x qty (price)" listing joined with " | ".
type OrderSummary struct {
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	Total     float64   `json:"total"`
	Profit    float64   `json:"profit"`
	Items     string    `json:"items"`
}

// Report is the full sales rollup.
type Report struct {
	TotalOrders   int            `json:"total_orders"`
	TotalRevenue  float64        `json:"total_revenue"`
	GrossProfit   float64        `json:"gross_profit"`
	AvgOrderValue float64        `json:"avg_order_value"`
	ByDate        []DateBucket   `json:"by_date"`
	TopProducts   []ProductSales `json:"top_products"`
	Orders        []OrderSummary `json:"orders"`
}

// Compute joins order items to their orders and products and aggregates
// revenue and gross profit. Line cost uses the item's snapshotted cost price,
// never the product's current one; that keeps historical profit correct after
// catalog edits.
func Compute(snap *Snapshot) *Report {
	rep := &Report{
		ByDate:      []DateBucket{},
		TopProducts: []ProductSales{},
		Orders:      []OrderSummary{},
	}
	if snap == nil {
		return rep
	}

	ordersByID := make(map[string]*model.Order, len(snap.Orders))
	for i := range snap.Orders {
		ordersByID[snap.Orders[i].ID] = &snap.Orders[i]
	}
	productNames := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		productNames[p.ID] = p.Name
	}

	dateBuckets := make(map[string]*DateBucket)
	productSales := make(map[string]*ProductSales)
	orderProfit := make(map[string]float64, len(snap.Orders))
	orderItems := make(map[string][]string, len(snap.Orders))

	for _, item := range snap.Items {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			continue
		}
		name, ok := productNames[item.ProductID]
		if !ok {
			name = "(unknown)"
		}

		revenue := float64(item.Qty) * item.Price
		cost := float64(item.Qty) * item.CostPrice
		profit := revenue - cost

		rep.TotalRevenue += revenue
		rep.GrossProfit += profit
		orderProfit[item.OrderID] += profit
		orderItems[item.OrderID] = append(orderItems[item.OrderID],
			fmt.Sprintf("%s x %d (%.0f)", name, item.Qty, item.Price))

		day := order.CreatedAt.UTC().Format("2006-01-02")
		bucket, ok := dateBuckets[day]
		if !ok {
			bucket = &DateBucket{Date: day}
			dateBuckets[day] = bucket
		}
		bucket.Revenue += revenue
		bucket.Profit += profit

		sales, ok := productSales[item.ProductID]
		if !ok {
			sales = &ProductSales{ProductID: item.ProductID, Name: name}
			productSales[item.ProductID] = sales
		}
		sales.QtySold += item.Qty
		sales.Revenue += revenue
		sales.Profit += profit
	}

	rep.TotalOrders = len(snap.Orders)
	if rep.TotalOrders > 0 {
		rep.AvgOrderValue = rep.TotalRevenue / float64(rep.TotalOrders)
	}

	for _, bucket := range dateBuckets {
		rep.ByDate = append(rep.ByDate, *bucket)
	}
	sort.Slice(rep.ByDate, func(i, j int) bool {
		return rep.ByDate[i].Date < rep.ByDate[j].Date
	})

	for _, sales := range productSales {
		rep.TopProducts = append(rep.TopProducts, *sales)
	}
	sort.Slice(rep.TopProducts, func(i, j int) bool {
		if rep.TopProducts[i].QtySold != rep.TopProducts[j].QtySold {
			return rep.TopProducts[i].QtySold > rep.TopProducts[j].QtySold
		}
		return rep.TopProducts[i].Name < rep.TopProducts[j].Name
	})
	if len(rep.TopProducts) > TopProductsLimit {
		rep.TopProducts = rep.TopProducts[:TopProductsLimit]
	}

	for _, order := range snap.Orders {
		rep.Orders = append(rep.Orders, OrderSummary{
			OrderID:   order.ID,
			CreatedAt: order.CreatedAt,
			Total:     order.Total,
			Profit:    orderProfit[order.ID],
			Items:     strings.Join(orderItems[order.ID], " | "),
		})
	}
	sort.Slice(rep.Orders, func(i, j int) bool {
		return rep.Orders[i].CreatedAt.After(rep.Orders[j].CreatedAt)
	})

	return rep
}
