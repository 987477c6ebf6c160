package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/testutil"
)

func TestUserRoutes(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "admin@club.com", model.RoleIDAdmin, "x")
	coord := testutil.CreateUser(t, db, "coord@club.com", model.RoleIDEventCoordinator, "x")
	app := testutil.NewApp(NewController(NewRepository(db), testutil.NewAuthorizer(), testutil.Pagination))

	code, env := testutil.Do(t, app, "GET", "/api/v1/users", "manager", 0, nil)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para MANAGE_USERS en el módulo ADMIN", env.Msg)

	code, env = testutil.Do(t, app, "GET", "/api/v1/users?search=coord", "admin", admin.ID, nil)
	require.Equal(t, 200, code)
	var infos []Info
	env.Decode(t, &infos)
	require.Len(t, infos, 1)
	assert.Equal(t, "event_coordinator", infos[0].Role)
	assert.Equal(t, int64(1), env.Total)

	code, env = testutil.Do(t, app, "PUT", "/api/v1/users/update-role", "admin", admin.ID,
		map[string]any{"user_id": coord.ID, "role_id": model.RoleIDManager})
	require.Equal(t, 200, code, env.Msg)
	var updated Info
	env.Decode(t, &updated)
	assert.Equal(t, "manager", updated.Role)

	code, env = testutil.Do(t, app, "PUT", "/api/v1/users/update-role", "admin", admin.ID,
		map[string]any{"user_id": coord.ID, "role_id": 9})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Rol inválido", env.Msg)

	code, _ = testutil.Do(t, app, "DELETE", fmt.Sprintf("/api/v1/users/%d", admin.ID), "admin", admin.ID, nil)
	assert.Equal(t, 400, code)

	code, _ = testutil.Do(t, app, "DELETE", fmt.Sprintf("/api/v1/users/%d", coord.ID), "admin", admin.ID, nil)
	assert.Equal(t, 200, code)
	code, _ = testutil.Do(t, app, "DELETE", fmt.Sprintf("/api/v1/users/%d", coord.ID), "admin", admin.ID, nil)
	assert.Equal(t, 404, code)

	code, env = testutil.Do(t, app, "GET", "/api/v1/users/profile", "admin", admin.ID, nil)
	require.Equal(t, 200, code)
	var me Info
	env.Decode(t, &me)
	assert.Equal(t, "admin@club.com", me.Email)
}

func TestLoadPrincipal(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	u := testutil.CreateUser(t, db, "m@club.com", model.RoleIDManager, "x")
	ctx := context.Background()

	p, err := repo.LoadPrincipal(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager", p.Role)
	assert.True(t, p.Active)

	require.NoError(t, db.Model(u).Update("status", model.UserInactive).Error)
	p, err = repo.LoadPrincipal(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, p.Active)

	p, err = repo.LoadPrincipal(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSeedRolesIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	require.NoError(t, repo.SeedRoles(context.Background()))
	require.NoError(t, repo.SeedRoles(context.Background()))

	var n int64
	require.NoError(t, db.Model(&model.Role{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}
