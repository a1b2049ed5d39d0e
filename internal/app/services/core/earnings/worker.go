package earnings

import (
	"context"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultReconcileSpec = "@hourly"
	leaderLockTTL        = 2 * time.Minute
)

// Worker periodically reconciles earnings summaries. Only the instance
// holding the leader lock runs a pass.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	earnings contracts.EarningsUsecase
	stop     chan struct{}
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, earningsUsecase contracts.EarningsUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, earnings: earningsUsecase, stop: make(chan struct{})}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Earnings.ReconcileCronSpec
	if spec == "" {
		spec = defaultReconcileSpec
	}
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("earnings.worker: invalid cron spec; falling back to @hourly",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultReconcileSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running pass to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyEarningsReconcileLock, leaderLockTTL)
	if err != nil {
		w.log.Warn("earnings.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("earnings.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyEarningsReconcileLock, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(leaderLockTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.RedisKeyEarningsReconcileLock, token, leaderLockTTL); err != nil {
					w.log.Warn("earnings.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	corrected, err := w.earnings.Reconcile(ctx)
	if err != nil {
		w.log.Warn("earnings.worker: reconcile failed", zap.Error(err))
		return
	}
	w.log.Info("earnings.worker: reconcile finished", zap.Int(constvars.LoggingCountKey, corrected))
}
