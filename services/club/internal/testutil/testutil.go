// Package testutil 控制器测试的公共夹具
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/services/club/internal/model"
)

// Pagination 测试用分页配置
var Pagination = config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}

// NewDB 创建已迁移的内存数据库，并写入固定角色
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	for _, r := range model.Roles() {
		require.NoError(t, db.Create(&r).Error)
	}
	return db
}

// NewAuthorizer 基于默认权限目录的门控
func NewAuthorizer() *middleware.Authorizer {
	return middleware.NewAuthorizer(permission.NewEvaluator(permission.DefaultCatalog()))
}

// FakeJWT 用请求头 X-Test-Role / X-Test-User 模拟认证结果
func FakeJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals(middleware.LocalRole, role)
		}
		if uid, err := strconv.ParseInt(c.Get("X-Test-User"), 10, 64); err == nil {
			c.Locals(middleware.LocalUserID, uid)
		}
		return c.Next()
	}
}

// NewApp 注册控制器，jwt 中间件替换为 FakeJWT
func NewApp(controllers ...router.Registrar) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	router.Register(app.Group("/api/v1"), map[string]fiber.Handler{"jwt": FakeJWT()}, controllers...)
	return app
}

// Envelope 统一响应
type Envelope struct {
	OK         bool            `json:"ok"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// Decode 解析 data 字段
func (e *Envelope) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v), string(e.Data))
}

// Do 以指定角色和用户发起请求
func Do(t *testing.T, app *fiber.App, method, path, role string, userID int64, body any) (int, *Envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	if userID > 0 {
		req.Header.Set("X-Test-User", strconv.FormatInt(userID, 10))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	env := &Envelope{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, env), string(raw))
	} else {
		env.Data = raw
	}
	return resp.StatusCode, env
}

// CreateUser 写入一个指定角色的用户
func CreateUser(t *testing.T, db *gorm.DB, email string, roleID int64, hash string) *model.User {
	t.Helper()
	u := &model.User{FirstName: "Test", LastName: "User", Email: email, Password: hash, Status: model.UserActive, RoleID: roleID}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}
