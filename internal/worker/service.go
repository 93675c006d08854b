package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/queue"
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(queueCfg config.QueueConfig, redisCfg config.RedisConfig, consumer *Consumer) (*Service, error) {
	if !queueCfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if !redisCfg.Enabled {
		return nil, errors.New("redis disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	server := asynq.NewServer(queue.BuildRedisOpt(redisCfg), queue.BuildServerConfig(queueCfg))
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}
