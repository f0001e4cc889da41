package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locduc071190/shopquanao/internal/model"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func fixtureSnapshot() *Snapshot {
	return &Snapshot{
		Products: []model.Product{
			{ID: "p1", Name: "Shirt", Price: 150, CostPrice: 90, Stock: 5},
			{ID: "p2", Name: "Hat", Price: 40, CostPrice: 25, Stock: 3},
		},
		Orders: []model.Order{
			{ID: "o1", CreatedAt: day(0), Total: 300},
			{ID: "o2", CreatedAt: day(1), Total: 180},
		},
		Items: []model.OrderItem{
			// Snapshotted at sale time; the catalog prices above differ.
			{ID: "i1", OrderID: "o1", ProductID: "p1", Qty: 3, Price: 100, CostPrice: 60},
			{ID: "i2", OrderID: "o2", ProductID: "p1", Qty: 1, Price: 100, CostPrice: 60},
			{ID: "i3", OrderID: "o2", ProductID: "p2", Qty: 2, Price: 40, CostPrice: 25},
		},
		Movements: []model.StockMovement{
			{ID: "m1", ProductID: "p1", Change: 9, Reason: model.ReasonInitialImport, Timestamp: day(-1)},
			{ID: "m2", ProductID: "p1", Change: -4, Reason: model.ReasonSale, Timestamp: day(0)},
		},
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	rep := Compute(&Snapshot{})

	assert.Zero(t, rep.TotalOrders)
	assert.Zero(t, rep.TotalRevenue)
	assert.Zero(t, rep.GrossProfit)
	assert.Zero(t, rep.AvgOrderValue)
	assert.Empty(t, rep.ByDate)
	assert.Empty(t, rep.TopProducts)
	assert.Empty(t, rep.Orders)
}

func TestComputeNilSnapshot(t *testing.T) {
	rep := Compute(nil)
	assert.Zero(t, rep.TotalOrders)
}

func TestComputeTotals(t *testing.T) {
	rep := Compute(fixtureSnapshot())

	assert.Equal(t, 2, rep.TotalOrders)
	assert.Equal(t, 480.0, rep.TotalRevenue)
	// (300-180) + (100-60) + (80-50) = 120 + 40 + 30
	assert.Equal(t, 190.0, rep.GrossProfit)
	assert.Equal(t, 240.0, rep.AvgOrderValue)
}

// Revenue from line items must agree with the frozen order totals: the two
// aggregation paths cross-check each other.
func TestRevenueMatchesOrderTotals(t *testing.T) {
	snap := fixtureSnapshot()
	rep := Compute(snap)

	totalFromHeaders := 0.0
	for _, o := range snap.Orders {
		totalFromHeaders += o.Total
	}
	assert.Equal(t, totalFromHeaders, rep.TotalRevenue)
}

// Profit is computed from the order item's snapshotted cost price, not the
// product's current one. The fixture's catalog prices were raised after the
// sales; the report must not notice.
func TestProfitUsesSnapshottedCostPrice(t *testing.T) {
	rep := Compute(fixtureSnapshot())

	// With current catalog prices the profit would be (150-90)-based and far
	// higher.
	assert.Equal(t, 190.0, rep.GrossProfit)

	require.Len(t, rep.Orders, 2)
	for _, summary := range rep.Orders {
		if summary.OrderID == "o1" {
			assert.Equal(t, 120.0, summary.Profit)
		}
	}
}

func TestComputeByDate(t *testing.T) {
	rep := Compute(fixtureSnapshot())

	require.Len(t, rep.ByDate, 2)
	assert.Equal(t, "2026-03-10", rep.ByDate[0].Date)
	assert.Equal(t, 300.0, rep.ByDate[0].Revenue)
	assert.Equal(t, 120.0, rep.ByDate[0].Profit)
	assert.Equal(t, "2026-03-11", rep.ByDate[1].Date)
	assert.Equal(t, 180.0, rep.ByDate[1].Revenue)
	assert.Equal(t, 70.0, rep.ByDate[1].Profit)
}

func TestComputeTopProducts(t *testing.T) {
	rep := Compute(fixtureSnapshot())

	require.Len(t, rep.TopProducts, 2)
	assert.Equal(t, "Shirt", rep.TopProducts[0].Name)
	assert.Equal(t, 4, rep.TopProducts[0].QtySold)
	assert.Equal(t, 160.0, rep.TopProducts[0].Profit)
	assert.Equal(t, "Hat", rep.TopProducts[1].Name)
	assert.Equal(t, 2, rep.TopProducts[1].QtySold)
}

func TestComputeTopProductsTruncates(t *testing.T) {
	snap := &Snapshot{}
	for i := 0; i < TopProductsLimit+3; i++ {
		id := string(rune('a' + i))
		snap.Products = append(snap.Products, model.Product{ID: id, Name: "P" + id})
		snap.Orders = append(snap.Orders, model.Order{ID: "o" + id, CreatedAt: day(0), Total: 10})
		snap.Items = append(snap.Items, model.OrderItem{
			ID: "i" + id, OrderID: "o" + id, ProductID: id,
			Qty: i + 1, Price: 10, CostPrice: 5,
		})
	}

	rep := Compute(snap)
	require.Len(t, rep.TopProducts, TopProductsLimit)
	// Highest quantity first.
	assert.Equal(t, TopProductsLimit+3, rep.TopProducts[0].QtySold)
}

func TestComputeOrderSummariesNewestFirst(t *testing.T) {
	rep := Compute(fixtureSnapshot())

	require.Len(t, rep.Orders, 2)
	assert.Equal(t, "o2", rep.Orders[0].OrderID)
	assert.Equal(t, "o1", rep.Orders[1].OrderID)

	assert.Equal(t, "Shirt x 3 (100)", rep.Orders[1].Items)
	assert.Equal(t, "Shirt x 1 (100) | Hat x 2 (40)", rep.Orders[0].Items)
	assert.Equal(t, 180.0, rep.Orders[0].Total)
}

func TestComputeSkipsOrphanItems(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Items = append(snap.Items, model.OrderItem{
		ID: "ix", OrderID: "no-such-order", ProductID: "p1", Qty: 99, Price: 100, CostPrice: 60,
	})

	rep := Compute(snap)
	assert.Equal(t, 480.0, rep.TotalRevenue)
}

func TestComputeUnknownProductName(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Items = append(snap.Items, model.OrderItem{
		ID: "iy", OrderID: "o1", ProductID: "vanished", Qty: 1, Price: 20, CostPrice: 10,
	})

	rep := Compute(snap)
	// The row still counts even without a matching product.
	assert.Equal(t, 500.0, rep.TotalRevenue)
	require.Len(t, rep.Orders, 2)
	assert.Contains(t, rep.Orders[1].Items, "(unknown) x 1 (20)")
}
