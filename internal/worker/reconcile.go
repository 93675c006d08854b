package worker

import (
	"context"
	"errors"
	"time"

	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/service"
)

// ReconcileService 库存对账定时服务
type ReconcileService struct {
	name       string
	reconciler *service.StockReconciler
	interval   time.Duration
}

// NewReconcileService 创建库存对账服务
func NewReconcileService(reconciler *service.StockReconciler, interval time.Duration) (*ReconcileService, error) {
	if reconciler == nil {
		return nil, errors.New("reconciler is nil")
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReconcileService{
		name:       "stock_reconciler",
		reconciler: reconciler,
		interval:   interval,
	}, nil
}

// Name 服务名称
func (s *ReconcileService) Name() string {
	if s == nil || s.name == "" {
		return "stock_reconciler"
	}
	return s.name
}

// Start 启动定时对账循环
func (s *ReconcileService) Start(ctx context.Context) error {
	if s == nil || s.reconciler == nil {
		return errors.New("reconciler not initialized")
	}

	runOnce := func() {
		adjusted, err := s.reconciler.Recompute(ctx)
		if err != nil {
			logger.Warnw("stock_reconcile_failed", "error", err)
			return
		}
		if adjusted > 0 {
			logger.Infow("stock_reconcile_done", "adjusted", adjusted)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

// Stop 停止服务
func (s *ReconcileService) Stop(ctx context.Context) error {
	return nil
}
