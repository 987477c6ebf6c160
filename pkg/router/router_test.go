package router

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct{}

func (stubController) Prefix() string { return "/stub" }

func (stubController) Routes(mw map[string]fiber.Handler) []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/open", Handler: func(c *fiber.Ctx) error { return c.SendString("open") }},
		{Method: fiber.MethodGet, Path: "/closed", Handler: func(c *fiber.Ctx) error { return c.SendString("closed") },
			Middlewares: []fiber.Handler{mw["jwt"], mw["missing"]}},
	}
}

func TestRegister(t *testing.T) {
	app := fiber.New()
	Register(app.Group("/api"), map[string]fiber.Handler{
		"jwt": func(c *fiber.Ctx) error { return c.Status(401).SendString("no") },
	}, stubController{})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/api/stub/open", 200, "open"},
		{"/api/stub/closed", 401, "no"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tt.code, resp.StatusCode)
		assert.Equal(t, tt.body, string(body))
	}
}
