package models

import "time"

// CartItem 购物车项，(cart_id, product_id) 唯一
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                            // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"-"`       // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product;index" json:"-"` // 商品ID
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                              // 数量
	CreatedAt time.Time `json:"created_at"`                                                      // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
