package models

import "time"

// Category 分类表（邻接表：parent_id 为空表示根分类）
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 名称（全局唯一）
	ParentID  *uint     `gorm:"index" json:"parent"`                                // 父分类ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// IsRoot 是否为根分类
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}
