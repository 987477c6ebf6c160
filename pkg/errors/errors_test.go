package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("create member: %w", Conflict("DNI"))

	assert.Equal(t, http.StatusConflict, GetCode(wrapped))
	assert.Equal(t, "DNI ya existe", GetMessage(wrapped))

	plain := fmt.Errorf("boom")
	assert.Equal(t, http.StatusInternalServerError, GetCode(plain))
	assert.Equal(t, "Error interno del servidor", GetMessage(plain))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Internal(cause)

	assert.True(t, Is(err, cause))
	assert.Equal(t, "[500] Error interno del servidor: connection refused", err.Error())
}

func TestNotFoundAndConflictMessages(t *testing.T) {
	assert.Equal(t, "Miembro no encontrado", NotFound("Miembro").Message)
	assert.Equal(t, http.StatusNotFound, NotFound("Miembro").Code)
	assert.Equal(t, "El DNI ya existe", Conflict("El DNI").Message)
}
