package employee

import (
	"context"

	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/model"
)

// Repository 员工仓储
type Repository struct {
	*dal.Repository[model.Employee]
}

// NewRepository 创建员工仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: dal.NewRepository[model.Employee](db)}
}

// List 分页查询员工
func (r *Repository) List(ctx context.Context, req *ListRequest, p *dal.Pagination) (*dal.PagedResult[model.Employee], error) {
	f := dal.NewFilter().
		Search(req.Search, "first_name", "last_name", "position").
		Eq("position", req.Position).
		Order("last_name ASC, first_name ASC")
	return r.FindPaged(ctx, p, f.Scopes()...)
}

// ExistsDNI 检查证件号是否已登记
func (r *Repository) ExistsDNI(ctx context.Context, dni int64) (bool, error) {
	return r.Exists(ctx, dal.WithWhere("dni = ?", dni))
}

// Tasks 分配给员工的维护任务
func (r *Repository) Tasks(ctx context.Context, id int64) ([]model.MaintenanceTask, error) {
	var tasks []model.MaintenanceTask
	err := r.DB().WithContext(ctx).
		Where("assigned_to = ?", id).
		Order("scheduled_date DESC").
		Find(&tasks).Error
	return tasks, err
}
