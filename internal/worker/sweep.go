package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
)

var (
	bookingsReturned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_sweep_bookings_returned_total",
		Help: "The total number of expired bookings auto-returned by the sweep",
	})
	sweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_sweep_failures_total",
		Help: "The total number of bookings the sweep failed to transition",
	})
)

// SweepPoller drives the expired-booking sweep: one run at start, then one
// per interval.
type SweepPoller struct {
	sweepUC  *usecase.SweepExpired
	interval time.Duration
}

func NewSweepPoller(sweepUC *usecase.SweepExpired, interval time.Duration) *SweepPoller {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &SweepPoller{
		sweepUC:  sweepUC,
		interval: interval,
	}
}

func (p *SweepPoller) Run(ctx context.Context) error {
	slog.Info("sweep poller started", "interval", p.interval.String())

	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *SweepPoller) runOnce(ctx context.Context) {
	processed, failed, err := p.sweepUC.Execute(ctx)
	if err != nil {
		slog.Error("sweep run failed", "error", err)
		return
	}

	bookingsReturned.Add(float64(processed))
	sweepFailures.Add(float64(failed))

	if processed > 0 || failed > 0 {
		slog.Info("sweep run finished", "returned", processed, "failed", failed)
	}
}
