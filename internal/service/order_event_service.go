package service

import (
	"strings"

	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/queue"
	"github.com/mini-ozon/internal/repository"
)

// OrderEventService 处理下单与状态变更的异步事件
type OrderEventService struct {
	orderRepo repository.OrderRepository
	logRepo   repository.OrderStatusLogRepository
}

// NewOrderEventService 创建订单事件服务
func NewOrderEventService(orderRepo repository.OrderRepository, logRepo repository.OrderStatusLogRepository) *OrderEventService {
	return &OrderEventService{
		orderRepo: orderRepo,
		logRepo:   logRepo,
	}
}

// HandleOrderCreated 校验订单仍存在并记录下单事件
func (s *OrderEventService) HandleOrderCreated(payload queue.OrderCreatedPayload) error {
	order, err := s.orderRepo.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	logger.Infow("order_created_event",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total.String(),
		"payload_total", payload.Total,
		"item_count", len(order.Items),
	)
	return nil
}

// RecordStatusChange 写入订单状态日志，同一 taskID 重复投递只记一次
func (s *OrderEventService) RecordStatusChange(payload queue.OrderStatusChangedPayload, taskID string) (bool, error) {
	if payload.OrderID == 0 || !IsValidOrderStatus(payload.ToStatus) {
		return false, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(payload.OrderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, ErrOrderNotFound
	}
	entry := &models.OrderStatusLog{
		OrderID:    payload.OrderID,
		FromStatus: payload.FromStatus,
		ToStatus:   payload.ToStatus,
		Source:     strings.TrimSpace(payload.Source),
		TaskID:     strings.TrimSpace(taskID),
	}
	return s.logRepo.Append(entry)
}

// ListStatusLogs 订单状态日志
func (s *OrderEventService) ListStatusLogs(orderID uint) ([]models.OrderStatusLog, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.logRepo.ListByOrder(orderID)
}
