package queue

import (
	"github.com/hibiken/asynq"

	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/logger"
)

// Client 异步任务客户端（队列未启用时为空实现）
type Client struct {
	client  *asynq.Client
	enabled bool
}

// NewClient 创建任务客户端；队列或 Redis 未启用时返回禁用实例
func NewClient(queueCfg config.QueueConfig, redisCfg config.RedisConfig) *Client {
	if !queueCfg.Enabled || !redisCfg.Enabled {
		return &Client{}
	}
	return &Client{
		client:  asynq.NewClient(BuildRedisOpt(redisCfg)),
		enabled: true,
	}
}

// Enabled 队列是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderConfirmationEmail 投递订单确认邮件任务
func (c *Client) EnqueueOrderConfirmationEmail(payload OrderConfirmationEmailPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderConfirmationEmailTask(payload)
	if err != nil {
		return err
	}
	info, err := c.client.Enqueue(task,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return err
	}
	logger.Infow("task_enqueued",
		"task_id", info.ID,
		"task_type", task.Type(),
		"queue", info.Queue,
	)
	return nil
}

// BuildRedisOpt 构造 asynq Redis 连接参数
func BuildRedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// BuildServerConfig 构造 asynq 消费端配置
func BuildServerConfig(cfg config.QueueConfig) asynq.Config {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			constants.QueueDefault: 1,
		},
		Logger: logger.S(),
	}
}
