package repository

import (
	"errors"
	"time"

	"github.com/mini-ozon/internal/constants"
	"github.com/mini-ozon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cartCreateRetryLimit = 3

// ErrCartQuantityLimit 累加后数量将超过 constants.ItemQuantityMax
var ErrCartQuantityLimit = errors.New("cart item quantity limit exceeded")

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUserID(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	UpsertItem(cartID, productID uint, quantity int) (*models.CartItem, error)
	GetItemForUser(userID, itemID uint) (*models.CartItem, error)
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ListItems(cartID uint) ([]models.CartItem, error)
	ClearItems(cartID uint) error
	DeleteItemsByProductIDs(productIDs []uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByUserID 获取用户购物车
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取或创建购物车，唯一约束冲突时重新读取
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < cartCreateRetryLimit; attempt++ {
		cart, err := r.GetByUserID(userID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
		created := &models.Cart{UserID: userID}
		err = r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(created).Error
		if err == nil && created.ID != 0 {
			return created, nil
		}
		if err != nil && !IsUniqueConstraintError(err) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("cart create conflict")
	}
	return nil, lastErr
}

// UpsertItem 原子地插入购物车项或累加数量，返回最新记录；累加越过上限时不修改并返回 ErrCartQuantityLimit
func (r *GormCartRepository) UpsertItem(cartID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity > constants.ItemQuantityMax {
		return nil, ErrCartQuantityLimit
	}
	now := time.Now()
	item := &models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": now,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("cart_items.quantity + excluded.quantity <= ?", constants.ItemQuantityMax),
		}},
	}).Create(item)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCartQuantityLimit
	}

	var current models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

// GetItemForUser 获取属于指定用户的购物车项
func (r *GormCartRepository) GetItemForUser(userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity 设置购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	}).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ListItems 获取购物车项（含商品）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ClearItems 清空购物车项，保留购物车本身
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// DeleteItemsByProductIDs 删除引用指定商品的购物车项
func (r *GormCartRepository) DeleteItemsByProductIDs(productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.Where("product_id IN ?", productIDs).Delete(&models.CartItem{}).Error
}
