package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/testutil"
)

var now = time.Date(2026, 5, 5, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Repository, func(method, path, role string, body any) (int, *testutil.Envelope)) {
	t.Helper()
	repo := NewRepository(testutil.NewDB(t))
	ctrl := NewController(repo, testutil.NewAuthorizer(), testutil.Pagination)
	ctrl.now = func() time.Time { return now }
	app := testutil.NewApp(ctrl)
	return repo, func(method, path, role string, body any) (int, *testutil.Envelope) {
		return testutil.Do(t, app, method, path, role, 2, body)
	}
}

func TestTaskLifecycle(t *testing.T) {
	_, do := setup(t)
	body := map[string]any{"title": "Reparar bomba", "category": "plumbing", "priority": "high", "assigned_to": 5}

	code, env := do("POST", "/api/v1/maintenance", "event_coordinator", body)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para CREATE_TASKS en el módulo MAINTENANCE", env.Msg)

	code, env = do("POST", "/api/v1/maintenance", "manager", body)
	require.Equal(t, 201, code, env.Msg)
	var task model.MaintenanceTask
	env.Decode(t, &task)
	assert.Equal(t, model.TaskAssigned, task.Status)
	assert.Equal(t, int64(2), task.RequestedBy)

	code, _ = do("POST", "/api/v1/maintenance", "manager", map[string]any{"title": "Pintar", "category": "painting"})
	assert.Equal(t, 400, code)

	code, env = do("PUT", "/api/v1/maintenance/1", "manager", map[string]any{"status": "completed", "actual_cost": 120})
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &task)
	assert.Equal(t, model.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(now))

	code, env = do("GET", "/api/v1/maintenance?status=completed", "event_coordinator", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), env.Total)

	code, _ = do("DELETE", "/api/v1/maintenance/1", "manager", nil)
	assert.Equal(t, 403, code)
	code, _ = do("DELETE", "/api/v1/maintenance/1", "admin", nil)
	assert.Equal(t, 200, code)
	code, env = do("GET", "/api/v1/maintenance/1", "admin", nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Tarea no encontrada", env.Msg)
}

func TestPendingAndOverdue(t *testing.T) {
	repo, do := setup(t)
	past, future := now.AddDate(0, 0, -2), now.AddDate(0, 0, 2)
	tasks := []model.MaintenanceTask{
		{Title: "baja", Priority: "low", Status: model.TaskPending, ScheduledDate: &future},
		{Title: "urgente", Priority: "urgent", Status: model.TaskPending, ScheduledDate: &future},
		{Title: "atrasada", Priority: "medium", Status: model.TaskInProgress, ScheduledDate: &past},
		{Title: "hecha", Priority: "high", Status: model.TaskCompleted, ScheduledDate: &past},
	}
	for i := range tasks {
		require.NoError(t, repo.Create(t.Context(), &tasks[i]))
	}

	code, env := do("GET", "/api/v1/maintenance/pending", "event_coordinator", nil)
	require.Equal(t, 200, code)
	var got []model.MaintenanceTask
	env.Decode(t, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "urgente", got[0].Title)

	code, env = do("GET", "/api/v1/maintenance/overdue", "event_coordinator", nil)
	require.Equal(t, 200, code)
	env.Decode(t, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "atrasada", got[0].Title)

	code, env = do("GET", "/api/v1/maintenance/statistics", "manager", nil)
	require.Equal(t, 200, code)
	var s Statistics
	env.Decode(t, &s)
	assert.Equal(t, int64(4), s.TotalTasks)
	assert.Equal(t, int64(2), s.PendingTasks)
	assert.Equal(t, int64(1), s.UrgentTasks)
}

func TestIncidents(t *testing.T) {
	_, do := setup(t)
	report := map[string]any{"title": "Fuga de agua", "description": "Fuga en vestuarios", "priority": "urgent"}

	code, env := do("POST", "/api/v1/maintenance/incidents", "event_coordinator", report)
	require.Equal(t, 201, code, env.Msg)
	var inc model.Incident
	env.Decode(t, &inc)
	assert.Equal(t, model.IncidentOpen, inc.Status)
	assert.True(t, inc.IncidentDate.Equal(now))

	resolve := map[string]any{"resolution": "Se cambió la tubería"}
	code, env = do("PUT", "/api/v1/maintenance/incidents/1/resolve", "event_coordinator", resolve)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para RESOLVE_INCIDENTS en el módulo MAINTENANCE", env.Msg)

	code, env = do("PUT", "/api/v1/maintenance/incidents/1/resolve", "manager", resolve)
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &inc)
	assert.Equal(t, model.IncidentResolved, inc.Status)
	require.NotNil(t, inc.ResolvedBy)

	code, env = do("PUT", "/api/v1/maintenance/incidents/1/resolve", "admin", resolve)
	assert.Equal(t, 400, code)
	assert.Equal(t, "El incidente ya fue resuelto", env.Msg)

	code, _ = do("PUT", "/api/v1/maintenance/incidents/9/resolve", "admin", resolve)
	assert.Equal(t, 404, code)

	code, env = do("GET", "/api/v1/maintenance/incidents?status=resolved", "event_coordinator", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), env.Total)
}
