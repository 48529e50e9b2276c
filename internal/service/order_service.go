package service

import (
	"strings"

	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/logger"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/queue"
	"github.com/mini-ozon/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// Checkout 将购物车转为订单：建单、快照订单项、重算总额、清空购物车（同一事务）
func (s *OrderService) Checkout(userID uint) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrEmptyCart
	}

	var order *models.Order
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		items, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = &models.Order{
			UserID: userID,
			Status: constants.OrderStatusPending,
			Total:  models.NewMoneyFromDecimal(decimal.Zero),
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if item.Product == nil {
				return ErrProductNotFound
			}
			if _, err := addOrderItem(orderRepo, order.ID, item.Product, item.Quantity); err != nil {
				return err
			}
		}
		return cartRepo.ClearItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.queueClient.EnqueueOrderCreated(queue.OrderCreatedPayload{
		OrderID:   full.ID,
		UserID:    full.UserID,
		Total:     full.Total.String(),
		ItemCount: len(full.Items),
	}); err != nil {
		logger.Warnw("order_checkout_enqueue_failed",
			"order_id", full.ID,
			"user_id", userID,
			"error", err,
		)
	}
	s.enqueueStatusChanged(full.ID, "", constants.OrderStatusPending, constants.OrderStatusSourceCheckout)
	logger.Infow("order_checkout_completed",
		"order_id", full.ID,
		"user_id", userID,
		"total", full.Total.String(),
		"items", len(full.Items),
	)
	return full, nil
}

// AddItem 向订单追加商品快照并重算总额
func (s *OrderService) AddItem(orderID, productID uint, quantity int) (*models.OrderItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	var created *models.OrderItem
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if IsTerminalOrderStatus(order.Status) {
			return ErrOrderClosed
		}
		product, err := s.productRepo.WithTx(tx).GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		created, err = addOrderItem(orderRepo, orderID, product, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveItem 删除订单项并重算总额
func (s *OrderService) RemoveItem(orderID, itemID uint) (*models.Order, error) {
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if IsTerminalOrderStatus(order.Status) {
			return ErrOrderClosed
		}
		item, err := orderRepo.GetItem(orderID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrOrderItemNotFound
		}
		if err := orderRepo.DeleteItem(item.ID); err != nil {
			return err
		}
		_, err = orderRepo.RecomputeTotal(orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(orderID)
}

// GetByID 获取订单（含订单项）
func (s *OrderService) GetByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListHistory 用户订单历史
func (s *OrderService) ListHistory(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if status := strings.TrimSpace(filter.Status); status != "" {
		normalized, err := normalizeOrderStatus(status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = normalized
	}
	return s.orderRepo.ListAdmin(filter)
}

// SetStatus 管理端修改订单状态
func (s *OrderService) SetStatus(orderID uint, status string) (*models.Order, error) {
	target, err := normalizeOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var from string
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !CanTransitOrderStatus(order.Status, target) {
			return ErrOrderStatusTransition
		}
		from = order.Status
		return orderRepo.UpdateStatus(orderID, target, nil)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusChanged(orderID, from, target, constants.OrderStatusSourceAdmin)
	logger.Infow("order_status_updated",
		"order_id", orderID,
		"from_status", from,
		"to_status", target,
	)
	return s.GetByID(orderID)
}

func (s *OrderService) enqueueStatusChanged(orderID uint, from, to, source string) {
	if err := s.queueClient.EnqueueOrderStatusChanged(queue.OrderStatusChangedPayload{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Source:     source,
	}); err != nil {
		logger.Warnw("order_enqueue_status_changed_failed",
			"order_id", orderID,
			"from_status", from,
			"to_status", to,
			"error", err,
		)
	}
}

// addOrderItem 写入商品快照并在同一事务内重算总额
func addOrderItem(orderRepo repository.OrderRepository, orderID uint, product *models.Product, quantity int) (*models.OrderItem, error) {
	item := &models.OrderItem{
		OrderID:      orderID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     quantity,
	}
	if err := orderRepo.CreateItem(item); err != nil {
		return nil, err
	}
	if _, err := orderRepo.RecomputeTotal(orderID); err != nil {
		return nil, err
	}
	return item, nil
}
