package assembler

import (
	"strings"

	"gorm.io/gorm"
)

// Filter 作用在资源表（别名 r）上的查询条件
type Filter func(*gorm.DB) *gorm.DB

// Query listView 的参数，SubjectID 为空表示匿名请求
type Query struct {
	Filters   []Filter
	SubjectID string
	Page      int
	PageSize  int
	Sort      Sort
}

// Eq r.<column> = value
func Eq(column string, value interface{}) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("r."+column+" = ?", value)
	}
}

// TextSearch 对多个文本列做全文检索，term 为空时不过滤
func TextSearch(columns []string, term string) Filter {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		parts := make([]string, len(columns))
		for i, c := range columns {
			parts[i] = "coalesce(r." + c + ", '')"
		}
		doc := strings.Join(parts, " || ' ' || ")
		return db.Where("to_tsvector('simple', "+doc+") @@ plainto_tsquery('simple', ?)", term)
	}
}

// Visible 已发布或属于 subject 的资源，d 没有 FlagColumn 时不过滤
func Visible(d *Descriptor, subjectID string) Filter {
	return func(db *gorm.DB) *gorm.DB {
		if d.FlagColumn == "" {
			return db
		}
		if subjectID == "" {
			return db.Where("r."+d.FlagColumn+" = ?", true)
		}
		return db.Where("(r."+d.FlagColumn+" = ? OR r."+ownerColumn+" = ?)", true, subjectID)
	}
}

// Page 分页结果
type Page[R any] struct {
	Items       []R   `json:"items"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage 组装分页结果，items 为 nil 时返回空数组
func NewPage[R any](items []R, page, pageSize int, total int64) *Page[R] {
	if items == nil {
		items = []R{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Page[R]{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// window 返回本页偏移量；offset 超出总数时 ok 为 false
func window(page, pageSize int, total int64) (offset int, ok bool) {
	offset = (page - 1) * pageSize
	return offset, int64(offset) < total
}
