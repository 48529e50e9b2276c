package worker

import (
	"context"
	"errors"

	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/provider"
	"github.com/mini-ozon/internal/queue"
	"github.com/mini-ozon/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 订单事件消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderCreated, c.handleOrderCreated)
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
}

// settle 订单不存在或状态非法属于不可重试错误，吞掉并记录；其余错误交给 asynq 重试
func settle(task string, orderID uint, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrOrderNotFound):
		logger.Debugw("worker_order_missing", "task", task, "order_id", orderID)
		return nil
	case errors.Is(err, service.ErrInvalidOrderStatus):
		logger.Warnw("worker_invalid_status", "task", task, "order_id", orderID, "error", err)
		return nil
	default:
		logger.Warnw("worker_task_retry", "task", task, "order_id", orderID, "error", err)
		return err
	}
}

func (c *Consumer) handleOrderCreated(_ context.Context, task *asynq.Task) error {
	payload, err := queue.DecodeOrderCreated(task)
	if err != nil {
		logger.Warnw("worker_payload_invalid", "task", task.Type(), "error", err)
		return err
	}
	if payload.OrderID == 0 || c.OrderEventService == nil {
		return nil
	}
	return settle(task.Type(), payload.OrderID, c.OrderEventService.HandleOrderCreated(payload))
}

func (c *Consumer) handleOrderStatusChanged(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.DecodeOrderStatusChanged(task)
	if err != nil {
		logger.Warnw("worker_payload_invalid", "task", task.Type(), "error", err)
		return err
	}
	if payload.OrderID == 0 || c.OrderEventService == nil {
		return nil
	}

	taskID, _ := asynq.GetTaskID(ctx)
	created, err := c.OrderEventService.RecordStatusChange(payload, taskID)
	if err == nil && !created {
		logger.Debugw("worker_status_log_duplicate", "order_id", payload.OrderID, "task_id", taskID)
	}
	return settle(task.Type(), payload.OrderID, err)
}
