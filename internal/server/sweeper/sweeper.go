package sweeper

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/log"
	"github.com/MagedNabil/graphQL/internal/store"
	"github.com/MagedNabil/graphQL/internal/tracing"
)

type Config struct {
	Enabled bool   `json:"enabled" yaml:"enabled" conf:"enabled"`
	CRON    string `json:"cron" yaml:"cron" conf:"cron"`
}

// Worker periodically counts comments whose parent post no longer resolves.
// Comment creation links the comment to its post in a second, non-atomic
// write, so a failure in between leaves the comment behind unlinked; the
// worker makes that window visible in the logs. It never mutates data.
type Worker struct {
	Comments   store.Comments
	Executor   executors.ScheduledExecutor
	Config     Config
	CancelFunc context.CancelFunc
}

type Params struct {
	fx.In

	Config Config
	Stores store.Stores
}

func NewWorker(params Params) *Worker {
	return &Worker{
		Comments: params.Stores.Comments,
		Executor: executors.NewPoolScheduleExecutor(executors.WithMaxConcurrent(1)),
		Config:   params.Config,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	if !w.Config.Enabled {
		log.Debug(ctx, "orphan sweeper disabled")
		return nil
	}

	cron := w.Config.CRON
	if cron == "" {
		cron = "0 0 * * * *"
	}

	cancelFunc, err := w.Executor.ScheduleFuncAtCronRate(
		w.runSweep,
		executors.CRONRule{Expr: cron},
	)
	if err != nil {
		return err
	}

	w.CancelFunc = cancelFunc

	log.Info(ctx, "orphan sweeper started", log.String("cron", cron))

	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.CancelFunc != nil {
		w.CancelFunc()
	}

	return w.Executor.Shutdown(ctx)
}

func (w *Worker) runSweep(ctx context.Context) {
	ctx = tracing.WithTraceID(ctx, tracing.GenerateTraceID())

	orphans, err := w.Sweep(ctx)
	if err != nil {
		log.Error(ctx, "orphan sweep failed", log.Cause(err))
		return
	}

	if orphans > 0 {
		log.Warn(ctx, "found comments with no resolvable parent post", log.Int64("orphans", orphans))
		return
	}

	log.Debug(ctx, "orphan sweep clean")
}

// Sweep counts the currently unlinked comments.
func (w *Worker) Sweep(ctx context.Context) (int64, error) {
	return w.Comments.CountOrphans(ctx)
}
