package dal

// Pagination LIMIT/OFFSET 分页参数
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPagination 规范化分页参数，limit 限制在 [1, maxLimit]
func NewPagination(page, limit, defaultLimit, maxLimit int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if limit < 1 {
		limit = 1
	}
	return &Pagination{Page: page, Limit: limit}
}

// Offset 计算偏移量
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PagedResult 分页结果
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagedResult 创建分页结果
func NewPagedResult[T any](items []T, total int64, p *Pagination) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return &PagedResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}
