package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// 预定义错误
var (
	ErrUnauthenticated   = New(http.StatusUnauthorized, "Usuario no autenticado")
	ErrBadRequest        = New(http.StatusBadRequest, "Solicitud inválida")
	ErrInternalServer    = New(http.StatusInternalServerError, "Error interno del servidor")
	ErrValidation        = New(http.StatusBadRequest, "Error de validación")
	ErrInvalidCredential = New(http.StatusUnauthorized, "Credenciales inválidas")
	ErrTokenRequired     = New(http.StatusUnauthorized, "Token de acceso requerido")
	ErrTokenExpired      = New(http.StatusUnauthorized, "Token expirado")
	ErrTokenInvalid      = New(http.StatusUnauthorized, "Token inválido")
	ErrTokenRevoked      = New(http.StatusUnauthorized, "Token revocado")
	ErrUserNotFound      = New(http.StatusUnauthorized, "Usuario no encontrado")
	ErrUserInactive      = New(http.StatusUnauthorized, "Usuario inactivo")
	ErrInsufficientStock = New(http.StatusBadRequest, "Stock insuficiente")
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Err     error  `json:"-"`
	Data    any    `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 解包错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is 检查是否为指定错误
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 类型转换错误
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode 获取错误码
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// GetMessage 获取错误消息
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrInternalServer.Message
}

// NotFound 创建未找到错误
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s no encontrado", resource),
	}
}

// BadRequest 创建请求错误
func BadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// Validation 创建校验错误，data 为字段错误明细
func Validation(data any) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: ErrValidation.Message,
		Data:    data,
	}
}

// Conflict 创建重复错误
func Conflict(field string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("%s ya existe", field),
	}
}

// Internal 创建内部错误
func Internal(err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: ErrInternalServer.Message,
		Err:     err,
	}
}
