package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/response"
)

// Recovery 恢复中间件
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.Any("requestId", c.Locals(LocalRequestID)),
				)
				err = response.ServerError(c)
			}
		}()
		return c.Next()
	}
}

// Cors 跨域中间件，allowOrigin 为 "*" 时回显请求来源
func Cors(allowOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin != "" && (allowOrigin == "*" || allowOrigin == origin) {
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, PATCH, OPTIONS")
			c.Set(fiber.HeaderAccessControlAllowHeaders, "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Request-ID")
			c.Set(fiber.HeaderAccessControlExposeHeaders, "Content-Length, Content-Disposition, X-Request-ID")
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
			c.Vary(fiber.HeaderOrigin)
		}
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

// RequestID 请求ID中间件
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

// AccessLog 访问日志中间件
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = errorStatus(err)
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.Any("requestId", c.Locals(LocalRequestID)),
		}
		if uid := GetUserID(c); uid != 0 {
			fields = append(fields, zap.Int64("userId", uid))
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request", fields...)
		} else {
			logger.Info("request", fields...)
		}
		return err
	}
}

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	tokens chan struct{}
	stop   chan struct{}
}

// NewRateLimiter 创建限流器，rate 为每秒补充的令牌数
func NewRateLimiter(rate, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		tokens: make(chan struct{}, burst),
		stop:   make(chan struct{}),
	}
	for i := 0; i < burst; i++ {
		rl.tokens <- struct{}{}
	}
	if rate > 0 {
		go rl.refill(time.Second / time.Duration(rate))
	}
	return rl
}

func (rl *RateLimiter) refill(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			select {
			case rl.tokens <- struct{}{}:
			default:
			}
		}
	}
}

// Stop 停止令牌补充
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware 限流中间件
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		select {
		case <-rl.tokens:
			return c.Next()
		default:
			return response.Error(c, fiber.StatusTooManyRequests, "Demasiadas solicitudes, intenta más tarde")
		}
	}
}

// ErrorHandler Fiber统一错误处理
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		}
		if appErr.Data != nil {
			return response.ErrorWithData(c, appErr.Code, appErr.Message, appErr.Data)
		}
		return response.Error(c, appErr.Code, appErr.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := fe.Message
		if fe.Code == fiber.StatusNotFound {
			msg = fmt.Sprintf("Ruta %s no encontrada", c.OriginalURL())
		}
		return response.Error(c, fe.Code, msg)
	}

	logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
	return response.ServerError(c)
}

func errorStatus(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperrors.GetCode(err)
}
