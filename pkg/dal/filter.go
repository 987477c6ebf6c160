package dal

import (
	"strings"
)

// Filter 列表筛选条件构建器
type Filter struct {
	scopes []Scope
}

// NewFilter 创建筛选构建器
func NewFilter() *Filter {
	return &Filter{}
}

// Eq 值非空时添加等值条件
func (f *Filter) Eq(column string, value string) *Filter {
	if value != "" {
		f.scopes = append(f.scopes, WithWhere(column+" = ?", value))
	}
	return f
}

// EqInt 值大于0时添加等值条件
func (f *Filter) EqInt(column string, value int64) *Filter {
	if value > 0 {
		f.scopes = append(f.scopes, WithWhere(column+" = ?", value))
	}
	return f
}

// Search 在多个列上做不区分大小写的模糊匹配
func (f *Filter) Search(term string, columns ...string) *Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return f
	}
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	pattern := "%" + strings.ToLower(term) + "%"
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	f.scopes = append(f.scopes, WithWhere("("+strings.Join(parts, " OR ")+")", args...))
	return f
}

// Where 条件成立时添加原始条件
func (f *Filter) Where(cond bool, query string, args ...any) *Filter {
	if cond {
		f.scopes = append(f.scopes, WithWhere(query, args...))
	}
	return f
}

// Order 排序
func (f *Filter) Order(order string) *Filter {
	if order != "" {
		f.scopes = append(f.scopes, WithOrder(order))
	}
	return f
}

// Scopes 返回已构建的作用域
func (f *Filter) Scopes() []Scope {
	return f.scopes
}
