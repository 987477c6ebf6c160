package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	pkgauth "github.com/countryclub/pkg/auth"
	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/pkg/validation"
	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/user"
)

// Revoker 注销Token
type Revoker interface {
	Revoke(ctx context.Context, claims *pkgauth.Claims) error
}

// Controller 认证控制器
type Controller struct {
	users      *user.Repository
	jwtManager *pkgauth.JWTManager
	revoker    Revoker
	evaluator  *permission.Evaluator
	bcryptCost int
}

// NewController 创建认证控制器
func NewController(users *user.Repository, jwtManager *pkgauth.JWTManager, revoker Revoker, evaluator *permission.Evaluator, bcryptCost int) *Controller {
	return &Controller{
		users:      users,
		jwtManager: jwtManager,
		revoker:    revoker,
		evaluator:  evaluator,
		bcryptCost: bcryptCost,
	}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/auth"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	jwt := []fiber.Handler{mw["jwt"]}
	return []router.Route{
		{Method: "POST", Path: "/register", Handler: c.register},
		{Method: "POST", Path: "/login", Handler: c.login},
		{Method: "POST", Path: "/verify", Handler: c.verify, Middlewares: jwt},
		{Method: "GET", Path: "/profile", Handler: c.profile, Middlewares: jwt},
		{Method: "PUT", Path: "/change-password", Handler: c.changePassword, Middlewares: jwt},
		{Method: "POST", Path: "/logout", Handler: c.logout, Middlewares: jwt},
		{Method: "POST", Path: "/refresh", Handler: c.refresh, Middlewares: jwt},
		{Method: "GET", Path: "/permissions", Handler: c.permissions, Middlewares: jwt},
	}
}

// register 注册，新用户固定为活动协调员角色
func (c *Controller) register(ctx *fiber.Ctx) error {
	var req RegisterRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	existing, err := c.users.FindByEmail(ctx.UserContext(), req.Email)
	if err != nil {
		return errors.Internal(err)
	}
	if existing != nil {
		return errors.Conflict("El email")
	}

	hash, err := pkgauth.HashPassword(req.Password, c.bcryptCost)
	if err != nil {
		return errors.Internal(err)
	}
	u := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Phone:     req.Phone,
		Status:    model.UserActive,
		RoleID:    model.RoleIDEventCoordinator,
	}
	if err := c.users.Create(ctx.UserContext(), u); err != nil {
		if dal.IsDuplicate(err) {
			return errors.Conflict("El email")
		}
		return errors.Internal(err)
	}

	u, err = c.users.FindWithRole(ctx.UserContext(), u.ID)
	if err != nil {
		return errors.Internal(err)
	}
	resp, err := c.issue(u)
	if err != nil {
		return errors.Internal(err)
	}
	logger.Info("user registered", zap.Int64("userId", u.ID), zap.String("role", u.RoleName()))
	return response.Created(ctx, resp)
}

func (c *Controller) login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	u, err := c.users.FindByEmail(ctx.UserContext(), req.Email)
	if err != nil {
		return errors.Internal(err)
	}
	if u == nil || !pkgauth.CheckPassword(req.Password, u.Password) {
		logger.Warn("login failed", zap.String("email", req.Email), zap.String("ip", ctx.IP()))
		return errors.ErrInvalidCredential
	}
	if u.Status != model.UserActive {
		return errors.ErrUserInactive
	}

	resp, err := c.issue(u)
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, "Login exitoso", resp)
}

func (c *Controller) verify(ctx *fiber.Ctx) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, "Token válido", user.ToInfo(u))
}

func (c *Controller) profile(ctx *fiber.Ctx) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	return response.Success(ctx, user.ToInfo(u))
}

func (c *Controller) changePassword(ctx *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	if !pkgauth.CheckPassword(req.CurrentPassword, u.Password) {
		return errors.BadRequest("Contraseña actual incorrecta")
	}
	hash, err := pkgauth.HashPassword(req.NewPassword, c.bcryptCost)
	if err != nil {
		return errors.Internal(err)
	}
	if err := c.users.UpdatePassword(ctx.UserContext(), u.ID, hash); err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, "Contraseña actualizada correctamente", nil)
}

func (c *Controller) logout(ctx *fiber.Ctx) error {
	if err := c.revoker.Revoke(ctx.UserContext(), middleware.GetClaims(ctx)); err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, "Sesión cerrada correctamente", nil)
}

// refresh 签发新Token并注销旧Token
func (c *Controller) refresh(ctx *fiber.Ctx) error {
	u, err := c.current(ctx)
	if err != nil {
		return err
	}
	resp, err := c.issue(u)
	if err != nil {
		return errors.Internal(err)
	}
	if err := c.revoker.Revoke(ctx.UserContext(), middleware.GetClaims(ctx)); err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, resp)
}

func (c *Controller) permissions(ctx *fiber.Ctx) error {
	role := permission.Role(middleware.GetRole(ctx))
	return response.Success(ctx, &PermissionsResponse{
		Role:        string(role),
		Permissions: c.evaluator.GetUserPermissions(role),
		Modules:     c.evaluator.GetAccessibleModules(role),
	})
}

func (c *Controller) current(ctx *fiber.Ctx) (*model.User, error) {
	u, err := c.users.FindWithRole(ctx.UserContext(), middleware.GetUserID(ctx))
	if err != nil {
		return nil, errors.Internal(err)
	}
	if u == nil {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

func (c *Controller) issue(u *model.User) (*LoginResponse, error) {
	token, err := c.jwtManager.CreateTokenInfo(u.ID, u.Email, u.RoleName())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{TokenInfo: token, User: user.ToInfo(u)}, nil
}
