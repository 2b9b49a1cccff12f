// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics exposes workload gauges for the helpdesk: how many tickets
// are open or snoozed, how many purchase orders are in flight, how many assets
// are checked out, and how deep the outbox backlog is. Values are refreshed
// on a fixed interval from a WorkloadStatsProvider.
type BusinessMetrics struct {
	logger *zap.Logger

	ticketsOpen        *Gauge
	ticketsSnoozed     *Gauge
	purchaseOrdersOpen *Gauge
	assetsCheckedOut   *Gauge
	outboxPending      *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	provider WorkloadStatsProvider
}

// WorkloadStatsProvider supplies point-in-time counts for the workload gauges.
// This interface lets the telemetry layer query aggregate state without
// depending on the domain repositories directly.
type WorkloadStatsProvider interface {
	// OpenTickets returns the number of tickets in OPEN or IN_PROGRESS status
	OpenTickets(ctx context.Context) (int64, error)

	// SnoozedTickets returns the number of tickets currently snoozed
	SnoozedTickets(ctx context.Context) (int64, error)

	// OpenPurchaseOrders returns the number of finalized but not yet
	// completed or cancelled purchase orders
	OpenPurchaseOrders(ctx context.Context) (int64, error)

	// CheckedOutAssets returns the number of assets currently assigned out
	CheckedOutAssets(ctx context.Context) (int64, error)

	// PendingOutboxEvents returns the number of outbox entries awaiting delivery
	PendingOutboxEvents(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	Provider        WorkloadStatsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:   logger,
		stopChan: make(chan struct{}),
		provider: cfg.Provider,
	}

	var err error

	bm.ticketsOpen, err = NewGauge(
		cfg.Meter,
		"opsdesk_tickets_open",
		"Number of tickets currently open or in progress",
		"{tickets}",
	)
	if err != nil {
		return nil, err
	}

	bm.ticketsSnoozed, err = NewGauge(
		cfg.Meter,
		"opsdesk_tickets_snoozed",
		"Number of tickets currently snoozed",
		"{tickets}",
	)
	if err != nil {
		return nil, err
	}

	bm.purchaseOrdersOpen, err = NewGauge(
		cfg.Meter,
		"opsdesk_purchase_orders_open",
		"Number of finalized purchase orders awaiting receipt",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.assetsCheckedOut, err = NewGauge(
		cfg.Meter,
		"opsdesk_assets_checked_out",
		"Number of assets currently checked out to a user",
		"{assets}",
	)
	if err != nil {
		return nil, err
	}

	bm.outboxPending, err = NewGauge(
		cfg.Meter,
		"opsdesk_outbox_pending",
		"Number of outbox events awaiting delivery",
		"{events}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of the workload gauges.
// It refreshes every interval (default: 5 minutes). This is non-blocking -
// use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectWorkloadMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectWorkloadMetrics(ctx)
		}
	}
}

// collectWorkloadMetrics refreshes every workload gauge from the provider.
func (bm *BusinessMetrics) collectWorkloadMetrics(ctx context.Context) {
	if bm.provider == nil {
		bm.logger.Debug("No workload stats provider configured, skipping metrics collection")
		return
	}

	samples := []struct {
		name  string
		gauge *Gauge
		query func(context.Context) (int64, error)
	}{
		{"open tickets", bm.ticketsOpen, bm.provider.OpenTickets},
		{"snoozed tickets", bm.ticketsSnoozed, bm.provider.SnoozedTickets},
		{"open purchase orders", bm.purchaseOrdersOpen, bm.provider.OpenPurchaseOrders},
		{"checked out assets", bm.assetsCheckedOut, bm.provider.CheckedOutAssets},
		{"pending outbox events", bm.outboxPending, bm.provider.PendingOutboxEvents},
	}

	for _, s := range samples {
		count, err := s.query(ctx)
		if err != nil {
			bm.logger.Warn("Failed to collect workload metric",
				zap.String("metric", s.name),
				zap.Error(err),
			)
			continue
		}
		s.gauge.Record(ctx, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
