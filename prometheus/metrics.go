package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Order metrics
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	OrderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shop_order_value",
			Help:    "Distribution of order totals",
			Buckets: prometheus.ExponentialBuckets(10000, 4, 8),
		},
	)

	OrdersRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_orders_rejected_insufficient_stock_total",
			Help: "Total number of orders rejected for insufficient stock",
		},
	)

	// Inventory metrics
	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_stock_adjustments_total",
			Help: "Total number of manual stock adjustments",
		},
		[]string{"direction"},
	)

	ProductInventoryGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shop_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name"},
	)

	// Product metrics
	ProductOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)
)

// RecordOrderPlaced increments the order counters with the order's total.
func RecordOrderPlaced(total float64) {
	OrdersPlacedTotal.Inc()
	OrderValue.Observe(total)
}

// RecordOrderRejected counts an order turned away for insufficient stock.
func RecordOrderRejected() {
	OrdersRejectedTotal.Inc()
}

// RecordStockAdjustment counts a manual adjustment by direction.
func RecordStockAdjustment(delta int) {
	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	StockAdjustmentsTotal.WithLabelValues(direction).Inc()
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID, productName string, stock int) {
	ProductInventoryGauge.WithLabelValues(productID, productName).Set(float64(stock))
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsTotal.WithLabelValues(operation).Inc()
}
