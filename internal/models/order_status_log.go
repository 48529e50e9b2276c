package models

import "time"

// OrderStatusLog 订单状态变更记录（由异步任务写入）
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                        // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`              // 订单ID
	FromStatus string    `gorm:"type:varchar(20)" json:"from_status"`         // 原状态（下单时为空）
	ToStatus   string    `gorm:"type:varchar(20);not null" json:"to_status"`  // 新状态
	Source     string    `gorm:"type:varchar(20);not null" json:"source"`     // 来源（checkout/admin）
	TaskID     string    `gorm:"type:varchar(64);uniqueIndex" json:"task_id"` // 任务ID（幂等）
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
