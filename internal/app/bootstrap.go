package app

import (
	"errors"
	"time"

	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/provider"
	"github.com/threadcap/threadcap/internal/router"
	"github.com/threadcap/threadcap/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		httpService := NewHTTPService(cfg.Server.Addr(), engine)
		services = append(services, httpService)
	}

	// 队列消费服务（仅在队列启用时）
	if (mode == ModeAll || mode == ModeWorker) && cfg.Queue.Enabled {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(cfg.Queue, cfg.Redis, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	// 库存对账服务（与队列无关，始终随应用运行）
	interval := time.Duration(cfg.Reconcile.IntervalMinutes) * time.Minute
	reconcileService, err := worker.NewReconcileService(container.StockReconciler, interval)
	if err != nil {
		return nil, err
	}
	services = append(services, reconcileService)

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
