package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/countryclub/pkg/auth"
	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/testutil"
	"github.com/countryclub/services/club/internal/user"
)

type harness struct {
	t   *testing.T
	app *fiber.App
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithDB(t, testutil.NewDB(t))
}

func newHarnessWithDB(t *testing.T, db *gorm.DB) *harness {
	users := user.NewRepository(db)
	jwtManager := pkgauth.NewJWTManager(&config.JWTConfig{Secret: "test", Issuer: "club", Expire: 3600})
	revocations := pkgauth.NewRevocationStore(redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()}))
	evaluator := permission.NewEvaluator(permission.DefaultCatalog())

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	router.Register(app.Group("/api/v1"),
		map[string]fiber.Handler{"jwt": middleware.JWTAuth(jwtManager, users, revocations)},
		NewController(users, jwtManager, revocations, evaluator, 4),
	)
	return &harness{t: t, app: app}
}

func (h *harness) do(method, path, token string, body any) (int, *testutil.Envelope) {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	env := &testutil.Envelope{}
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(env))
	return resp.StatusCode, env
}

func TestRegisterLoginLogout(t *testing.T) {
	h := newHarness(t)

	code, env := h.do("POST", "/api/v1/auth/register", "", map[string]any{
		"first_name": "Lucía", "last_name": "Gómez", "email": "lucia@club.com", "password": "secreto1",
	})
	require.Equal(t, 201, code, env.Msg)
	var reg LoginResponse
	env.Decode(t, &reg)
	assert.Equal(t, "event_coordinator", reg.User.Role)
	assert.Equal(t, model.RoleIDEventCoordinator, reg.User.RoleID)

	code, env = h.do("POST", "/api/v1/auth/register", "", map[string]any{
		"first_name": "Lucía", "last_name": "Gómez", "email": "lucia@club.com", "password": "secreto1",
	})
	assert.Equal(t, 409, code)
	assert.Equal(t, "El email ya existe", env.Msg)

	code, env = h.do("POST", "/api/v1/auth/login", "", map[string]any{"email": "lucia@club.com", "password": "mal"})
	assert.Equal(t, 401, code)
	assert.Equal(t, "Credenciales inválidas", env.Msg)

	code, env = h.do("POST", "/api/v1/auth/login", "", map[string]any{"email": "lucia@club.com", "password": "secreto1"})
	require.Equal(t, 200, code)
	var login LoginResponse
	env.Decode(t, &login)
	require.NotEmpty(t, login.Token)

	code, env = h.do("GET", "/api/v1/auth/permissions", login.Token, nil)
	require.Equal(t, 200, code)
	var perms PermissionsResponse
	env.Decode(t, &perms)
	assert.True(t, perms.Permissions[permission.ModuleInventory][permission.ActionRequestItems])
	assert.False(t, perms.Permissions[permission.ModuleMembers][permission.ActionDelete])
	assert.NotContains(t, perms.Modules, permission.ModulePurchases)

	code, _ = h.do("POST", "/api/v1/auth/logout", login.Token, nil)
	require.Equal(t, 200, code)

	code, env = h.do("GET", "/api/v1/auth/profile", login.Token, nil)
	assert.Equal(t, 401, code)
	assert.Equal(t, "Token revocado", env.Msg)
}

func TestChangePasswordAndRefresh(t *testing.T) {
	h := newHarness(t)
	_, env := h.do("POST", "/api/v1/auth/register", "", map[string]any{
		"first_name": "Pablo", "last_name": "Ruiz", "email": "pablo@club.com", "password": "secreto1",
	})
	var reg LoginResponse
	env.Decode(t, &reg)

	code, env := h.do("PUT", "/api/v1/auth/change-password", reg.Token, map[string]any{
		"current_password": "otro", "new_password": "nuevo123",
	})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Contraseña actual incorrecta", env.Msg)

	code, _ = h.do("PUT", "/api/v1/auth/change-password", reg.Token, map[string]any{
		"current_password": "secreto1", "new_password": "nuevo123",
	})
	require.Equal(t, 200, code)

	code, _ = h.do("POST", "/api/v1/auth/login", "", map[string]any{"email": "pablo@club.com", "password": "nuevo123"})
	assert.Equal(t, 200, code)

	code, env = h.do("POST", "/api/v1/auth/refresh", reg.Token, nil)
	require.Equal(t, 200, code)
	var refreshed LoginResponse
	env.Decode(t, &refreshed)
	assert.NotEqual(t, reg.Token, refreshed.Token)

	code, _ = h.do("POST", "/api/v1/auth/verify", reg.Token, nil)
	assert.Equal(t, 401, code)
	code, _ = h.do("POST", "/api/v1/auth/verify", refreshed.Token, nil)
	assert.Equal(t, 200, code)
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	code, env := h.do("POST", "/api/v1/auth/register", "", map[string]any{"email": "bad"})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Error de validación", env.Msg)
	assert.Contains(t, string(env.Data), `"field":"email"`)
}

// 查重之后、写入之前被并发注册抢先时，唯一索引冲突仍返回409
func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	fired := false
	require.NoError(t, db.Callback().Create().Before("gorm:begin_transaction").Register("test:concurrent_register", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "users" {
			return
		}
		fired = true
		now := time.Now()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (first_name, last_name, email, password, status, role_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			"Otra", "Persona", "carla@club.com", "x", model.UserActive, model.RoleIDEventCoordinator, now, now,
		)
	}))
	h := newHarnessWithDB(t, db)

	code, env := h.do("POST", "/api/v1/auth/register", "", map[string]any{
		"first_name": "Carla", "last_name": "Ríos", "email": "carla@club.com", "password": "secreto1",
	})
	require.True(t, fired)
	assert.Equal(t, 409, code)
	assert.Equal(t, "El email ya existe", env.Msg)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "carla@club.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
