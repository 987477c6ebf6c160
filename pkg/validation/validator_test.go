package validation

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/countryclub/pkg/errors"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func TestStructCollectsFieldErrors(t *testing.T) {
	err := Struct(&loginRequest{Email: "nope", Password: "123", Status: "gone"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Error de validación", appErr.Message)

	fields, ok := appErr.Data.([]FieldError)
	require.True(t, ok)
	assert.Equal(t, []FieldError{
		{Field: "email", Message: "email debe ser un email válido"},
		{Field: "password", Message: "password debe tener al menos 6 caracteres"},
		{Field: "status", Message: "status debe ser uno de: active, inactive"},
	}, fields)
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(&loginRequest{Email: "a@club.com", Password: "secreto"}))
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := BindAndValidate(c, &req); err != nil {
			return c.Status(apperrors.GetCode(err)).SendString(apperrors.GetMessage(err))
		}
		return c.SendString(req.Email)
	})

	tests := []struct {
		body string
		code int
		want string
	}{
		{`{"email":"a@club.com","password":"secreto"}`, 200, "a@club.com"},
		{`{"email":"a@club.com"}`, 400, "Error de validación"},
		{`{bad json`, 400, "Cuerpo de la solicitud inválido"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tt.code, resp.StatusCode, tt.body)
		buf := new(strings.Builder)
		_, _ = bufCopy(buf, resp)
		assert.Equal(t, tt.want, buf.String())
	}
}

func bufCopy(dst *strings.Builder, resp *http.Response) (int64, error) {
	defer resp.Body.Close()
	return io.Copy(dst, resp.Body)
}
