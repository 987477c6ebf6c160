package dal

import (
	"time"

	"gorm.io/gorm"
)

// Model 基础模型
type Model struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Scope 查询作用域
type Scope func(*gorm.DB) *gorm.DB

// WithPreload 预加载关联
func WithPreload(query string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Preload(query, args...) }
}

// WithOrder 排序
func WithOrder(order string) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Order(order) }
}

// WithWhere 附加条件
func WithWhere(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}
