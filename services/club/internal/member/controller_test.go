package member

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/testutil"
)

func newApp(t *testing.T) (*Controller, *Repository, func(method, path, role string, body any) (int, *testutil.Envelope)) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := NewRepository(db, "MEM-")
	ctrl := NewController(repo, testutil.NewAuthorizer(), testutil.Pagination)
	app := testutil.NewApp(ctrl)
	return ctrl, repo, func(method, path, role string, body any) (int, *testutil.Envelope) {
		return testutil.Do(t, app, method, path, role, 7, body)
	}
}

func memberBody(dni int64, name string, start, end time.Time) map[string]any {
	return map[string]any{
		"DNI":        dni,
		"first_name": name,
		"last_name":  "Pérez",
		"email":      fmt.Sprintf("%d@club.com", dni),
		"start_date": start,
		"end_date":   end,
	}
}

func TestCreateMember(t *testing.T) {
	_, _, do := newApp(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	code, env := do("POST", "/api/v1/members", "event_coordinator", memberBody(1, "Ana", start, end))
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para CREATE en el módulo MEMBERS", env.Msg)

	code, env = do("POST", "/api/v1/members", "manager", memberBody(1, "Ana", start, end))
	require.Equal(t, 201, code, env.Msg)
	var m model.Member
	env.Decode(t, &m)
	assert.Equal(t, fmt.Sprintf("MEM-%d", m.ID), m.MembershipNumber)
	assert.Equal(t, int64(7), m.RegistratorID)
	assert.Equal(t, model.MemberActive, m.Status)

	code, env = do("POST", "/api/v1/members", "manager", memberBody(1, "Ana", start, end))
	assert.Equal(t, 409, code)
	assert.Equal(t, "El DNI ya existe", env.Msg)

	code, env = do("POST", "/api/v1/members", "manager", memberBody(2, "Luis", end, start))
	assert.Equal(t, 400, code)
	assert.Equal(t, "Error de validación", env.Msg)
}

func TestMemberCRUD(t *testing.T) {
	_, _, do := newApp(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	for i, name := range []string{"Ana", "Beatriz", "Carlos"} {
		code, env := do("POST", "/api/v1/members", "admin", memberBody(int64(i+1), name, start, end))
		require.Equal(t, 201, code, env.Msg)
	}

	code, env := do("GET", "/api/v1/members?search=bea", "event_coordinator", nil)
	require.Equal(t, 200, code)
	var list []model.Member
	env.Decode(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Beatriz", list[0].FirstName)

	code, env = do("GET", "/api/v1/members?limit=2", "manager", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(3), env.Total)
	assert.Equal(t, 2, env.TotalPages)

	id := list[0].ID
	code, env = do("PUT", fmt.Sprintf("/api/v1/members/%d", id), "manager", map[string]any{"status": "suspended"})
	require.Equal(t, 200, code, env.Msg)
	var m model.Member
	env.Decode(t, &m)
	assert.Equal(t, model.MemberSuspended, m.Status)

	code, env = do("PUT", fmt.Sprintf("/api/v1/members/%d", id), "manager", map[string]any{"end_date": start.AddDate(0, 0, -1)})
	assert.Equal(t, 400, code)
	assert.Equal(t, "La fecha de fin debe ser posterior a la fecha de inicio", env.Msg)

	code, _ = do("DELETE", fmt.Sprintf("/api/v1/members/%d", id), "manager", nil)
	assert.Equal(t, 403, code)
	code, _ = do("DELETE", fmt.Sprintf("/api/v1/members/%d", id), "admin", nil)
	assert.Equal(t, 200, code)
	code, env = do("GET", fmt.Sprintf("/api/v1/members/%d", id), "admin", nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Miembro no encontrado", env.Msg)
}

func TestVerifyMembership(t *testing.T) {
	ctrl, repo, do := newApp(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl.now = func() time.Time { return now }

	cases := []struct {
		name   string
		status string
		end    time.Time
		active bool
	}{
		{"vigente", model.MemberActive, now.AddDate(0, 1, 0), true},
		{"vencida", model.MemberActive, now.AddDate(0, 0, -1), false},
		{"suspendida", model.MemberSuspended, now.AddDate(1, 0, 0), false},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &model.Member{DNI: int64(100 + i), FirstName: "X", LastName: "Y", Status: tc.status,
				StartDate: now.AddDate(-1, 0, 0), EndDate: tc.end}
			require.NoError(t, repo.CreateWithNumber(t.Context(), m))

			code, env := do("PUT", fmt.Sprintf("/api/v1/members/%d/verify", m.ID), "manager", nil)
			require.Equal(t, 200, code)
			var res VerifyResponse
			env.Decode(t, &res)
			assert.Equal(t, tc.active, res.Active)
		})
	}

	code, env := do("PUT", "/api/v1/members/1/verify", "event_coordinator", nil)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para VERIFY_MEMBERSHIP en el módulo MEMBERS", env.Msg)
}

func TestMemberRoutesRequireRole(t *testing.T) {
	_, _, do := newApp(t)
	code, env := do("GET", "/api/v1/members", "", nil)
	assert.Equal(t, 401, code)
	assert.Equal(t, "Usuario no autenticado", env.Msg)

	code, _ = do("GET", "/api/v1/members", "guest", nil)
	assert.Equal(t, 403, code)
}
