package worker

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/provider"
	"github.com/threadcap/threadcap/internal/queue"
	"github.com/threadcap/threadcap/internal/service"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建任务消费者
func NewConsumer(container *provider.Container) *Consumer {
	return &Consumer{Container: container}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Errorw("worker_order_confirmation_payload_invalid", "error", err)
		return err
	}

	form := service.OrderForm{
		Name:         payload.Name,
		LastName:     payload.LastName,
		Address:      payload.Address,
		Email:        payload.Email,
		MobileNumber: payload.MobileNumber,
	}
	if err := c.EmailService.SendOrderConfirmation(ctx, form); err != nil {
		logger.Errorw("worker_order_confirmation_send_failed", "email", payload.Email, "error", err)
		return err
	}
	return nil
}
