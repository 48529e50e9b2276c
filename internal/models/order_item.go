package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem 订单项（下单时的商品快照，不做合并）
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID      uint      `gorm:"index;not null" json:"order_id"`                             // 订单ID
	ProductID    uint      `gorm:"index;not null" json:"product"`                              // 商品ID
	ProductName  string    `gorm:"type:varchar(255);not null" json:"product_name"`             // 商品名称快照
	ProductPrice Money     `gorm:"type:decimal(10,2);not null;default:0" json:"product_price"` // 商品单价快照
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`                         // 数量
	CreatedAt    time.Time `json:"created_at"`                                                 // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 行小计（单价 × 数量）
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.ProductPrice.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
