package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	pkgauth "github.com/countryclub/pkg/auth"
	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/database"
	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/services/club/internal/admin"
	"github.com/countryclub/services/club/internal/auth"
	"github.com/countryclub/services/club/internal/employee"
	"github.com/countryclub/services/club/internal/event"
	"github.com/countryclub/services/club/internal/inventory"
	"github.com/countryclub/services/club/internal/maintenance"
	"github.com/countryclub/services/club/internal/member"
	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/report"
	"github.com/countryclub/services/club/internal/user"
)

const serviceName = "club-service"

func main() {
	// 加载配置
	if err := config.Init(os.Getenv("CONFIG_PATH")); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	db := database.Get()
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}
	logger.Info("数据库迁移完成")

	users := user.NewRepository(db)
	if err := users.SeedRoles(context.Background()); err != nil {
		logger.Fatal("初始化角色失败", zap.Error(err))
	}

	// 初始化Redis
	if err := database.InitRedis(&cfg.Redis); err != nil {
		logger.Fatal("初始化Redis失败", zap.Error(err))
	}
	revocations := pkgauth.NewRevocationStore(database.GetRedis())

	// 权限目录
	catalog := permission.DefaultCatalog()
	evaluator := permission.NewEvaluator(catalog)
	authz := middleware.NewAuthorizer(evaluator)

	if n, err := pkgauth.SyncPolicies(db, catalog); err != nil {
		logger.Warn("同步权限策略失败", zap.Error(err))
	} else {
		logger.Info("权限策略已同步", zap.Int("count", n))
	}
	policies, err := pkgauth.NewPolicyService(catalog)
	if err != nil {
		logger.Fatal("初始化策略服务失败", zap.Error(err))
	}

	if cfg.JWT.Secret == "" || strings.HasPrefix(cfg.JWT.Secret, "${") {
		if cfg.IsProd() {
			logger.Fatal("生产环境必须配置 JWT 密钥")
		}
		logger.Warn("未配置 JWT 密钥，仅可用于开发环境")
	}
	jwtManager := pkgauth.NewJWTManager(&cfg.JWT)

	// 创建Fiber应用
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    cfg.Server.HTTP.BodyLimit,
		ReadTimeout:  time.Duration(cfg.Server.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.HTTP.WriteTimeout) * time.Second,
	})

	// 全局中间件
	app.Use(middleware.Recovery())
	app.Use(middleware.RequestID())
	app.Use(middleware.Cors(cfg.Server.HTTP.CorsOrigin))
	app.Use(middleware.AccessLog())

	var limiter *middleware.RateLimiter
	if cfg.Security.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Security.RateLimit, cfg.Security.RateBurst)
		app.Use(limiter.Middleware())
	}

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"service": serviceName,
			"club":    cfg.Club.Name,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// 注册路由
	middlewares := map[string]fiber.Handler{
		"jwt": middleware.JWTAuth(jwtManager, users, revocations),
	}
	router.Register(app.Group("/api/v1"), middlewares,
		auth.NewController(users, jwtManager, revocations, evaluator, cfg.Security.BcryptCost),
		user.NewController(users, authz, cfg.Pagination),
		member.NewController(member.NewRepository(db, cfg.Club.MembershipPrefix), authz, cfg.Pagination),
		event.NewController(event.NewRepository(db), authz, cfg.Pagination),
		employee.NewController(employee.NewRepository(db), authz, cfg.Pagination),
		inventory.NewController(inventory.NewRepository(db), authz, cfg.Pagination, cfg.Club),
		maintenance.NewController(maintenance.NewRepository(db), authz, cfg.Pagination),
		report.NewController(report.NewRepository(db), authz),
		admin.NewController(policies, evaluator, authz),
	)

	// 路由绑定的权限必须全部存在于目录中
	if err := catalog.Validate(authz.Bindings()); err != nil {
		var unknown *permission.UnknownBindingError
		if errors.As(err, &unknown) {
			logger.Warn("存在未登记的权限绑定", zap.Int("count", len(unknown.Bindings)), zap.Error(err))
		}
	}

	addr := cfg.Server.HTTP.Addr()
	go func() {
		logger.Info("俱乐部服务启动", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("服务运行失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("俱乐部服务正在清理资源...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("关闭HTTP服务失败", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}
	if err := database.CloseRedis(); err != nil {
		logger.Error("关闭Redis失败", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("关闭数据库失败", zap.Error(err))
	}
}
