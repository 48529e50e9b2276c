package models

import "time"

// Product 商品表
type Product struct {
	ID         uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`       // 名称
	Price      Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 价格
	CategoryID uint      `gorm:"not null;index" json:"category"`                     // 分类ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                         // 更新时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
