package queue

import (
	"encoding/json"

	"github.com/mini-ozon/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreated 下单完成通知任务
	TaskOrderCreated = constants.TaskOrderCreated
	// TaskOrderStatusChanged 订单状态变更任务
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
)

// OrderCreatedPayload 下单完成任务载荷
type OrderCreatedPayload struct {
	OrderID   uint   `json:"order_id"`
	UserID    uint   `json:"user_id"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// OrderStatusChangedPayload 订单状态变更任务载荷
type OrderStatusChangedPayload struct {
	OrderID    uint   `json:"order_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Source     string `json:"source"`
}

// NewOrderCreatedTask 创建下单完成任务
func NewOrderCreatedTask(payload OrderCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreated, body), nil
}

// NewOrderStatusChangedTask 创建订单状态变更任务
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}

// DecodeOrderCreated 解析下单完成任务
func DecodeOrderCreated(task *asynq.Task) (OrderCreatedPayload, error) {
	var payload OrderCreatedPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// DecodeOrderStatusChanged 解析状态变更任务
func DecodeOrderStatusChanged(task *asynq.Task) (OrderStatusChangedPayload, error) {
	var payload OrderStatusChangedPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
