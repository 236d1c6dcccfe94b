package utils

import "strings"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination 分页请求参数
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// ListQuery 列表查询参数（排序 + 搜索）
type ListQuery struct {
	Pagination
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// Normalize 补全默认值，maxLimit <= 0 时使用 MaxLimit
func (p *Pagination) Normalize(maxLimit int) {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

// GetPageOffset 计算分页偏移量
func (p *Pagination) GetPageOffset() (int, int) {
	p.Normalize(MaxLimit)
	return (p.Page - 1) * p.Limit, p.Limit
}

// IsDesc sortType 为 asc 时升序，其余一律降序
func (q *ListQuery) IsDesc() bool {
	return !strings.EqualFold(strings.TrimSpace(q.SortType), "asc")
}
