package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type PoolStatsHandler interface {
	Handle(ctx context.Context, query queries.GetPoolStatsQuery) (queries.GetPoolStatsQueryResponse, error)
}

// PoolReportJob periodically logs the size of the unassigned pool and the
// number of open batches.
type PoolReportJob struct {
	handler  PoolStatsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPoolReportJob creates the job. schedule is a six-field cron spec with
// seconds, e.g. "0 * * * * *".
func NewPoolReportJob(handler PoolStatsHandler, schedule string, logger *slog.Logger) *PoolReportJob {
	return &PoolReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pool_report_job"),
	}
}

func (j *PoolReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.report(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pool report job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running report to finish.
func (j *PoolReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pool report job stopped")
}

func (j *PoolReportJob) report(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetPoolStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pool report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order pool",
		"unassigned_orders", stats.UnassignedOrders,
		"unassigned_weight", stats.UnassignedWeight.String(),
		"active_deliveries", stats.ActiveDeliveries,
		"completed_orders", stats.CompletedOrders,
	)
}
