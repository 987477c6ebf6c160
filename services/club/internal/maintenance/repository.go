package maintenance

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/model"
)

const priorityRank = "CASE priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC"

// Repository 维护仓储
type Repository struct {
	*dal.Repository[model.MaintenanceTask]
	incidents *dal.Repository[model.Incident]
}

// NewRepository 创建维护仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: dal.NewRepository[model.MaintenanceTask](db),
		incidents:  dal.NewRepository[model.Incident](db),
	}
}

// List 分页查询维护任务
func (r *Repository) List(ctx context.Context, req *TaskListRequest, p *dal.Pagination) (*dal.PagedResult[model.MaintenanceTask], error) {
	f := dal.NewFilter().
		Search(req.Search, "title", "description", "location").
		Eq("status", req.Status).
		Eq("priority", req.Priority).
		Eq("category", req.Category).
		EqInt("assigned_to", req.AssignedTo).
		Order("id DESC")
	return r.FindPaged(ctx, p, f.Scopes()...)
}

// Pending 待处理任务，按优先级和计划时间排序
func (r *Repository) Pending(ctx context.Context, limit int) ([]model.MaintenanceTask, error) {
	return r.Find(ctx,
		dal.WithWhere("status = ?", model.TaskPending),
		dal.WithOrder(priorityRank),
		dal.WithOrder("scheduled_date ASC"),
		func(db *gorm.DB) *gorm.DB { return db.Limit(limit) },
	)
}

// Overdue 计划时间已过但未完成的任务
func (r *Repository) Overdue(ctx context.Context, now time.Time) ([]model.MaintenanceTask, error) {
	return r.Find(ctx,
		dal.WithWhere("status IN ? AND scheduled_date < ?", []string{model.TaskPending, model.TaskAssigned, model.TaskInProgress}, now),
		dal.WithOrder("scheduled_date ASC"),
	)
}

// Statistics 任务与事故汇总
func (r *Repository) Statistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := r.DB().WithContext(ctx).Model(&model.MaintenanceTask{}).Select(`
		COUNT(*) AS total_tasks,
		COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks,
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_tasks,
		COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress_tasks,
		COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0) AS high_priority_tasks,
		COALESCE(SUM(CASE WHEN priority = 'urgent' THEN 1 ELSE 0 END), 0) AS urgent_tasks,
		COALESCE(AVG(estimated_cost), 0) AS avg_estimated_cost,
		COALESCE(AVG(actual_cost), 0) AS avg_actual_cost`).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	s.OpenIncidents, err = r.incidents.Count(ctx, dal.WithWhere("status = ?", model.IncidentOpen))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListIncidents 分页查询事故
func (r *Repository) ListIncidents(ctx context.Context, status, priority string, p *dal.Pagination) (*dal.PagedResult[model.Incident], error) {
	f := dal.NewFilter().
		Eq("status", status).
		Eq("priority", priority).
		Order("incident_date DESC, id DESC")
	return r.incidents.FindPaged(ctx, p, f.Scopes()...)
}

// CreateIncident 上报事故
func (r *Repository) CreateIncident(ctx context.Context, i *model.Incident) error {
	return r.incidents.Create(ctx, i)
}

// FindIncident 查询事故
func (r *Repository) FindIncident(ctx context.Context, id int64) (*model.Incident, error) {
	return r.incidents.FindByID(ctx, id)
}

// ResolveIncident 关闭未处理的事故，已处理时返回 false
func (r *Repository) ResolveIncident(ctx context.Context, id, resolver int64, resolution string, at time.Time) (bool, error) {
	res := r.DB().WithContext(ctx).Model(&model.Incident{}).
		Where("id = ? AND status = ?", id, model.IncidentOpen).
		Updates(map[string]any{
			"status":      model.IncidentResolved,
			"resolution":  resolution,
			"resolved_by": resolver,
			"resolved_at": at,
		})
	return res.RowsAffected > 0, res.Error
}
