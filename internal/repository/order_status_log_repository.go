package repository

import (
	"github.com/mini-ozon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderStatusLogRepository 订单状态日志数据访问接口
type OrderStatusLogRepository interface {
	Append(entry *models.OrderStatusLog) (bool, error)
	ListByOrder(orderID uint) ([]models.OrderStatusLog, error)
}

// GormOrderStatusLogRepository GORM 实现
type GormOrderStatusLogRepository struct {
	db *gorm.DB
}

// NewOrderStatusLogRepository 创建订单状态日志仓库
func NewOrderStatusLogRepository(db *gorm.DB) *GormOrderStatusLogRepository {
	return &GormOrderStatusLogRepository{db: db}
}

// Append 写入状态日志，相同 task_id 只记录一次，返回是否新写入
func (r *GormOrderStatusLogRepository) Append(entry *models.OrderStatusLog) (bool, error) {
	if entry == nil {
		return false, nil
	}
	if entry.TaskID == "" {
		entry.TaskID = uuid.NewString()
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}},
		DoNothing: true,
	}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByOrder 获取订单的状态日志
func (r *GormOrderStatusLogRepository) ListByOrder(orderID uint) ([]models.OrderStatusLog, error) {
	logs := make([]models.OrderStatusLog, 0)
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
