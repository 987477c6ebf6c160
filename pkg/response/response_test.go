package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return Success(c, fiber.Map{"id": 1}) })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "No tienes acceso al módulo ADMIN") })
	app.Get("/page", func(c *fiber.Ctx) error { return SuccessPage(c, []int{1, 2}, 21, 2, 10) })

	body := doGet(t, app, "/ok", http.StatusOK)
	assert.JSONEq(t, `{"ok":true,"msg":"OK","data":{"id":1}}`, body)

	body = doGet(t, app, "/forbidden", http.StatusForbidden)
	assert.JSONEq(t, `{"ok":false,"msg":"No tienes acceso al módulo ADMIN"}`, body)

	body = doGet(t, app, "/page", http.StatusOK)
	var page PageResponse
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(21), page.Total)
}

func doGet(t *testing.T, app *fiber.App, path string, status int) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
