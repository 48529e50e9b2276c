package service

import (
	"errors"

	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/repository"

	"gorm.io/gorm"
)

// CartView 购物车详情（用于响应）
type CartView struct {
	ID     uint              `json:"id"`
	UserID uint              `json:"user"`
	Items  []models.CartItem `json:"items"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreateCart 获取或创建用户购物车
func (s *CartService) GetOrCreateCart(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	return s.cartRepo.GetOrCreateByUser(userID)
}

// AddItem 加入购物车，已存在时累加数量，返回累加后的数量
// 商品校验与写入在同一事务内完成
func (s *CartService) AddItem(userID, productID uint, quantity int) (int, error) {
	if err := checkQuantity(quantity); err != nil {
		return 0, err
	}
	if userID == 0 {
		return 0, ErrUserNotFound
	}
	var total int
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetOrCreateByUser(userID)
		if err != nil {
			return err
		}
		item, err := cartRepo.UpsertItem(cart.ID, product.ID, quantity)
		if errors.Is(err, repository.ErrCartQuantityLimit) {
			return ErrQuantityTooLarge
		}
		if err != nil {
			return err
		}
		total = item.Quantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateItem 设置购物车项数量（绝对值）
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (int, error) {
	item, err := s.cartRepo.GetItemForUser(userID, itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, ErrCartItemNotFound
	}
	if err := checkQuantity(quantity); err != nil {
		return 0, err
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.cartRepo.GetItemForUser(userID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteItem(item.ID)
}

// View 查看购物车，每项内嵌完整商品
func (s *CartService) View(userID uint) (*CartView, error) {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	return &CartView{ID: cart.ID, UserID: cart.UserID, Items: items}, nil
}
