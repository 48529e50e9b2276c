package models

import "time"

// Order 订单表
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                            // 主键
	UserID    uint      `gorm:"index;not null" json:"user"`                                      // 用户ID
	Status    string    `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 订单状态
	Total     Money     `gorm:"type:decimal(10,2);not null;default:0" json:"total"`              // 订单总额（由订单项汇总）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                      // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
