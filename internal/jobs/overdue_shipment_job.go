package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// overdueAfter is how long a shipment may be underway before it is
// reported, matching the window after which a sender may mark it failed.
const overdueAfter = 48 * time.Hour

// OverdueOrderFinder lists Shipping orders whose onboard confirmation is at
// or before a cutoff time.
type OverdueOrderFinder interface {
	GetAllShippingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

// OverdueShipmentJob periodically reports shipments that have been underway
// for 48 hours or more. It only logs: failing an overdue order is a
// deliberate sender decision, not an automatic one.
type OverdueShipmentJob struct {
	finder OverdueOrderFinder
	clock  ports.Clock
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOverdueShipmentJob creates a job that reports overdue shipments.
func NewOverdueShipmentJob(finder OverdueOrderFinder, clock ports.Clock, logger *slog.Logger) *OverdueShipmentJob {
	return &OverdueShipmentJob{
		finder: finder,
		clock:  clock,
		cron:   cron.New(),
		logger: logger.With("component", "overdue_shipment_job"),
	}
}

// Start begins the overdue shipment job, running every 10 minutes.
func (j *OverdueShipmentJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue shipment job started (running every 10 minutes)")
	return nil
}

// Run executes one sweep. Exposed so tests and operators can trigger a
// sweep without waiting for the schedule.
func (j *OverdueShipmentJob) Run() {
	ctx := context.Background()
	cutoff := j.clock.Now().Add(-overdueAfter)

	overdue, err := j.finder.GetAllShippingSince(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue shipment sweep failed", "error", err)
		return
	}

	for _, target := range overdue {
		shipped := target.ShippedTime()
		if shipped == nil {
			continue
		}
		j.logger.WarnContext(ctx, "Shipment overdue",
			"orderID", target.ID(),
			"shippedTime", *shipped,
			"overdueFor", j.clock.Now().Sub(*shipped),
		)
	}
}

// Stop stops the overdue shipment job.
func (j *OverdueShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue shipment job stopped")
}
