package dal

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/errors"
)

// ParseID 解析正整数 ID
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.BadRequest("ID requerido")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("ID inválido")
	}
	return id, nil
}

// ParamID 读取路径参数中的 ID
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	return ParseID(c.Params(name))
}

// PaginationFromQuery 从 ?page=&limit= 读取分页参数
func PaginationFromQuery(c *fiber.Ctx, cfg config.PaginationConfig) *Pagination {
	return NewPagination(c.QueryInt("page", 1), c.QueryInt("limit", cfg.DefaultLimit), cfg.DefaultLimit, cfg.MaxLimit)
}
