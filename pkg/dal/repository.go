package dal

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate 唯一索引冲突，需开启 gorm.Config.TranslateError
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Repository 通用仓储
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository 创建仓储
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB 获取数据库实例
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Create 创建实体
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Save 保存实体
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// UpdateFields 更新指定字段，返回受影响行数
func (r *Repository[T]) UpdateFields(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	var entity T
	res := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete 软删除，返回受影响行数
func (r *Repository[T]) Delete(ctx context.Context, id int64) (int64, error) {
	var entity T
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity)
	return res.RowsAffected, res.Error
}

// FindByID 根据ID查找，不存在时返回 nil
func (r *Repository[T]) FindByID(ctx context.Context, id int64, scopes ...Scope) (*T, error) {
	return r.First(ctx, append(scopes, WithWhere("id = ?", id))...)
}

// First 查找第一条，不存在时返回 nil
func (r *Repository[T]) First(ctx context.Context, scopes ...Scope) (*T, error) {
	var entity T
	if err := r.apply(ctx, scopes).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Find 查找全部
func (r *Repository[T]) Find(ctx context.Context, scopes ...Scope) ([]T, error) {
	var entities []T
	if err := r.apply(ctx, scopes).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindPaged 分页查询
func (r *Repository[T]) FindPaged(ctx context.Context, p *Pagination, scopes ...Scope) (*PagedResult[T], error) {
	var (
		entities []T
		total    int64
	)
	db := r.apply(ctx, scopes)
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Offset(p.Offset()).Limit(p.Limit).Find(&entities).Error; err != nil {
		return nil, err
	}
	return NewPagedResult(entities, total, p), nil
}

// Count 统计数量
func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	err := r.apply(ctx, scopes).Count(&n).Error
	return n, err
}

// Exists 检查是否存在
func (r *Repository[T]) Exists(ctx context.Context, scopes ...Scope) (bool, error) {
	n, err := r.Count(ctx, scopes...)
	return n > 0, err
}

// Transaction 执行事务
func (r *Repository[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *Repository[T]) apply(ctx context.Context, scopes []Scope) *gorm.DB {
	var entity T
	db := r.db.WithContext(ctx).Model(&entity)
	for _, s := range scopes {
		db = s(db)
	}
	return db
}
