package user

import (
	"context"

	"gorm.io/gorm"

	pkgauth "github.com/countryclub/pkg/auth"
	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/model"
)

// Repository 用户仓储
type Repository struct {
	*dal.Repository[model.User]
	roles *dal.Repository[model.Role]
}

// NewRepository 创建用户仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: dal.NewRepository[model.User](db),
		roles:      dal.NewRepository[model.Role](db),
	}
}

// FindByEmail 根据邮箱查找（含角色）
func (r *Repository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.First(ctx, dal.WithPreload("Role"), dal.WithWhere("email = ?", email))
}

// FindWithRole 根据ID查找（含角色）
func (r *Repository) FindWithRole(ctx context.Context, id int64) (*model.User, error) {
	return r.FindByID(ctx, id, dal.WithPreload("Role"))
}

// FindRole 根据ID查找角色
func (r *Repository) FindRole(ctx context.Context, id int64) (*model.Role, error) {
	return r.roles.FindByID(ctx, id)
}

// List 分页查询用户
func (r *Repository) List(ctx context.Context, req *ListRequest, p *dal.Pagination) (*dal.PagedResult[model.User], error) {
	f := dal.NewFilter().
		Search(req.Search, "first_name", "last_name", "email").
		EqInt("role_id", req.RoleID).
		Eq("status", req.Status).
		Order("id ASC")
	return r.FindPaged(ctx, p, append(f.Scopes(), dal.WithPreload("Role"))...)
}

// UpdatePassword 更新密码
func (r *Repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.UpdateFields(ctx, id, map[string]any{"password": hash})
	return err
}

// UpdateRole 更新角色
func (r *Repository) UpdateRole(ctx context.Context, id, roleID int64) (int64, error) {
	return r.UpdateFields(ctx, id, map[string]any{"role_id": roleID})
}

// SeedRoles 写入固定角色
func (r *Repository) SeedRoles(ctx context.Context) error {
	for _, role := range model.Roles() {
		if err := r.roles.DB().WithContext(ctx).
			Where(model.Role{ID: role.ID}).
			Assign(model.Role{Name: role.Name, Description: role.Description}).
			FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadPrincipal 每次请求加载用户当前的角色和状态
func (r *Repository) LoadPrincipal(ctx context.Context, userID int64) (*pkgauth.Principal, error) {
	u, err := r.FindWithRole(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return &pkgauth.Principal{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.RoleName(),
		Active: u.Status == model.UserActive,
	}, nil
}
