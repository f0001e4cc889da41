package report

import (
	"fmt"
	"strconv"
	"time"
)

// Table is a rendered CSV log: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// OrderLog flattens order items with their order header and product name into
// the detailed sales log. Per-item gross profit is per unit, matching the
// exported report of the original shop log.
func OrderLog(snap *Snapshot) *Table {
	t := &Table{
		Header: []string{
			"Order ID", "Created At", "OrderItem ID", "Product ID", "Product Name",
			"Quantity", "Selling Price (per item)", "Cost Price (per item)",
			"Gross Profit (per item)", "Total Order Value",
		},
	}
	if snap == nil {
		return t
	}

	ordersByID := make(map[string]struct {
		createdAt time.Time
		total     float64
	}, len(snap.Orders))
	for _, o := range snap.Orders {
		ordersByID[o.ID] = struct {
			createdAt time.Time
			total     float64
		}{o.CreatedAt, o.Total}
	}
	names := productNameIndex(snap)

	for _, item := range snap.Items {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			continue
		}
		t.Rows = append(t.Rows, []string{
			item.OrderID,
			order.createdAt.UTC().Format(time.RFC3339),
			item.ID,
			item.ProductID,
			names[item.ProductID],
			strconv.Itoa(item.Qty),
			formatAmount(item.Price),
			formatAmount(item.CostPrice),
			formatAmount(item.Price - item.CostPrice),
			formatAmount(order.total),
		})
	}
	return t
}

// StockMovementLog flattens the ledger with product names and current stock
// balances.
func StockMovementLog(snap *Snapshot) *Table {
	t := &Table{
		Header: []string{
			"Movement ID", "Timestamp", "Product ID", "Product Name",
			"Change", "Reason", "Current Stock",
		},
	}
	if snap == nil {
		return t
	}

	names := productNameIndex(snap)
	stocks := make(map[string]int, len(snap.Products))
	for _, p := range snap.Products {
		stocks[p.ID] = p.Stock
	}

	for _, m := range snap.Movements {
		t.Rows = append(t.Rows, []string{
			m.ID,
			m.Timestamp.UTC().Format(time.RFC3339),
			m.ProductID,
			names[m.ProductID],
			strconv.Itoa(m.Change),
			m.Reason,
			strconv.Itoa(stocks[m.ProductID]),
		})
	}
	return t
}

func productNameIndex(snap *Snapshot) map[string]string {
	names := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		names[p.ID] = p.Name
	}
	return names
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
