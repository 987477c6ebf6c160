package event

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/model"
)

const dateLayout = "2006-01-02"

// Repository 活动仓储
type Repository struct {
	*dal.Repository[model.Event]
}

// NewRepository 创建活动仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: dal.NewRepository[model.Event](db)}
}

// List 分页查询活动
func (r *Repository) List(ctx context.Context, req *ListRequest, p *dal.Pagination) (*dal.PagedResult[model.Event], error) {
	f := dal.NewFilter().
		Search(req.Search, "name", "description", "location").
		Eq("status", req.Status).
		EqInt("event_type_id", req.EventType)
	if start, err := time.Parse(dateLayout, req.StartDate); err == nil {
		f.Where(true, "date >= ?", start)
	}
	if end, err := time.Parse(dateLayout, req.EndDate); err == nil {
		f.Where(true, "date < ?", end.AddDate(0, 0, 1))
	}
	return r.FindPaged(ctx, p, f.Order("date DESC").Scopes()...)
}

// Upcoming 未来已排期的活动，按时间升序
func (r *Repository) Upcoming(ctx context.Context, now time.Time, limit int) ([]model.Event, error) {
	return r.Find(ctx,
		dal.WithWhere("date >= ? AND status = ?", now, model.EventScheduled),
		dal.WithOrder("date ASC"),
		func(db *gorm.DB) *gorm.DB { return db.Limit(limit) },
	)
}

// ByStatus 按状态查询活动
func (r *Repository) ByStatus(ctx context.Context, status string) ([]model.Event, error) {
	return r.Find(ctx, dal.WithWhere("status = ?", status), dal.WithOrder("date DESC"))
}

// ByOrganizer 按组织者查询活动
func (r *Repository) ByOrganizer(ctx context.Context, organizerID int64) ([]model.Event, error) {
	return r.Find(ctx, dal.WithWhere("organizer_id = ?", organizerID), dal.WithOrder("date DESC"))
}

// Approve 审批活动，已审批时返回 false
func (r *Repository) Approve(ctx context.Context, id, approver int64, at time.Time) (bool, error) {
	res := r.DB().WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND approved = ?", id, false).
		Updates(map[string]any{"approved": true, "approved_by": approver, "approved_at": at})
	return res.RowsAffected > 0, res.Error
}
