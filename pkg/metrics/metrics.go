package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CartOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart operations by result",
		},
		[]string{"op", "result"}, // op: add|remove|update; result: ok|noop|stock_exceeded|not_found|failed
	)
	CartEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_entries",
			Help: "Number of entries currently in cart",
		},
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_external_lookup_duration_seconds",
			Help:    "Duration of stock/catalog lookups",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // stock|catalog
	)
	SlotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_slot_writes_total",
			Help: "Durable slot writes by result",
		},
		[]string{"result"},
	)
)

var (
	CommandsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_commands_consumed_total",
			Help: "Number of cart commands fetched from Kafka",
		},
		[]string{"topic"},
	)
	CommandsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_commands_processed_total",
			Help: "Number of cart commands applied to the cart",
		},
		[]string{"topic"},
	)
	CommandsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_cart_commands_failed_total",
			Help: "Number of failed cart command attempts (rejections, garbage and transient errors)",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_cache_size",
			Help: "Number of products currently in cache",
		},
	)
)

// InventoryBreakerState — состояние circuit breaker'а API магазина: 0 closed, 1 half-open, 2 open.
var InventoryBreakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "inventory_breaker_state",
		Help: "Inventory API circuit breaker state (0 closed, 1 half-open, 2 open)",
	},
	[]string{"name"},
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в default registry (повторный вызов безопасен).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartOperations, CartEntries, LookupDuration, SlotWrites,
			CommandsConsumed, CommandsProcessed, CommandsFailed,
			CacheOps, CacheSize,
			InventoryBreakerState,
		)
	})
}
