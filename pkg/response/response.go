package response

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Response 统一响应结构
type Response struct {
	OK   bool        `json:"ok"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	OK         bool        `json:"ok"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// 响应消息定义
const (
	MsgSuccess      = "OK"
	MsgCreated      = "Creado correctamente"
	MsgUpdated      = "Actualizado correctamente"
	MsgDeleted      = "Eliminado correctamente"
	MsgUnauthorized = "Usuario no autenticado"
	MsgForbidden    = "Permisos insuficientes"
	MsgServerError  = "Error interno del servidor"
)

// Success 成功响应
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(http.StatusOK).JSON(Response{
		OK:   true,
		Msg:  MsgSuccess,
		Data: data,
	})
}

// SuccessWithMessage 成功响应(带消息)
func SuccessWithMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(http.StatusOK).JSON(Response{
		OK:   true,
		Msg:  message,
		Data: data,
	})
}

// Created 创建成功响应
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(http.StatusCreated).JSON(Response{
		OK:   true,
		Msg:  MsgCreated,
		Data: data,
	})
}

// SuccessPage 分页成功响应
func SuccessPage(c *fiber.Ctx, data interface{}, total int64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return c.Status(http.StatusOK).JSON(PageResponse{
		OK:         true,
		Msg:        MsgSuccess,
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// Error 错误响应
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		OK:  false,
		Msg: message,
	})
}

// ErrorWithData 错误响应(带数据)
func ErrorWithData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		OK:   false,
		Msg:  message,
		Data: data,
	})
}

// Unauthorized 未认证
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgUnauthorized
	}
	return Error(c, http.StatusUnauthorized, message)
}

// Forbidden 禁止访问
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgForbidden
	}
	return Error(c, http.StatusForbidden, message)
}

// ServerError 服务器错误
func ServerError(c *fiber.Ctx) error {
	return Error(c, http.StatusInternalServerError, MsgServerError)
}
