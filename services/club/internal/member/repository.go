package member

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/model"
)

// Repository 会员仓储
type Repository struct {
	*dal.Repository[model.Member]
	prefix string
}

// NewRepository 创建会员仓储，prefix 为会员编号前缀
func NewRepository(db *gorm.DB, prefix string) *Repository {
	return &Repository{Repository: dal.NewRepository[model.Member](db), prefix: prefix}
}

// CreateWithNumber 创建会员并按ID生成会员编号
func (r *Repository) CreateWithNumber(ctx context.Context, m *model.Member) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		m.MembershipNumber = "TMP-" + uuid.NewString()
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		m.MembershipNumber = fmt.Sprintf("%s%d", r.prefix, m.ID)
		return tx.Model(m).Update("membership_number", m.MembershipNumber).Error
	})
}

// List 分页查询会员
func (r *Repository) List(ctx context.Context, req *ListRequest, p *dal.Pagination) (*dal.PagedResult[model.Member], error) {
	f := dal.NewFilter().
		Search(req.Search, "first_name", "last_name", "email", "membership_number").
		Eq("status", req.Status).
		Order("id DESC")
	return r.FindPaged(ctx, p, f.Scopes()...)
}

// ExistsDNI 检查证件号是否已登记
func (r *Repository) ExistsDNI(ctx context.Context, dni int64) (bool, error) {
	return r.Exists(ctx, dal.WithWhere("dni = ?", dni))
}
