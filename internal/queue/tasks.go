package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/threadcap/threadcap/internal/constants"
)

// OrderConfirmationEmailPayload 订单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

// NewOrderConfirmationEmailTask 构造订单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskOrderConfirmationEmail, data), nil
}
