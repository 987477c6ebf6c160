// Package validation 基于 go-playground/validator 的请求体校验
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/countryclub/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError 字段校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Get 获取校验器单例
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 字段名使用 json 标签
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct 校验结构体，失败时返回 400 校验错误
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return apperrors.BadRequest(apperrors.ErrBadRequest.Message)
	}
	fields := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperrors.Validation(fields)
}

// BindAndValidate 解析请求体并校验
func BindAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.Wrap(err, fiber.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	return Struct(req)
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", f)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", f)
	case "min":
		if isString(fe) {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", f, fe.Param())
		}
		return fmt.Sprintf("%s debe ser mayor o igual a %s", f, fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("%s no puede exceder %s caracteres", f, fe.Param())
		}
		return fmt.Sprintf("%s debe ser menor o igual a %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", f, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s debe ser posterior a %s", f, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", f)
	}
}

func isString(fe validator.FieldError) bool {
	k := fe.Kind()
	return k == reflect.String || k == reflect.Slice || k == reflect.Map
}
