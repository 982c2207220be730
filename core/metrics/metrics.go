package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the transaction core. Conflicts and insufficient-stock aborts
// are user-visible outcomes, not errors, so they get their own series.
var (
	LockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_lock_conflicts_total",
		Help: "Item lock acquisitions rejected because another holder owns the lock.",
	})

	InsufficientStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_insufficient_stock_total",
		Help: "Workflows aborted because a conditional stock decrement failed.",
	})

	SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Sales committed (create and update).",
	})

	PurchasesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_purchases_committed_total",
		Help: "Purchase receipts committed.",
	})

	ReturnsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_returns_committed_total",
		Help: "Sales returns committed.",
	})
)
