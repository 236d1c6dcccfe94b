package assembler

import (
	"sort"
	"strings"

	"vidtube/pkg/errs"
)

// Kind 资源类型
type Kind string

const (
	KindComment Kind = "comment"
	KindTweet   Kind = "tweet"
	KindVideo   Kind = "video"
)

// ownerColumn 所有资源都以 owner_id 关联到 users.id
const ownerColumn = "owner_id"

// Sort 排序字段 + 方向，Field 为对外字段名（如 createdAt）
type Sort struct {
	Field string
	Desc  bool
}

// Descriptor 描述一种资源如何被查询、投影和修改
type Descriptor struct {
	Kind  Kind
	Table string
	// Columns 投影到视图的资源列
	Columns []string
	// LikeColumn likes 表中指向该资源的外键列
	LikeColumn string
	// Sorts 允许的排序字段 -> 列名
	Sorts       map[string]string
	DefaultSort Sort
	// Mutable update 允许修改的列
	Mutable []string
	// Required 修改后去除空白仍不能为空的列
	Required []string
	// Rules 修改时各列的 validate 标签，与模型上的标签保持一致
	Rules map[string]string
	// FlagColumn toggleFlag 翻转的布尔列，为空表示不支持
	FlagColumn string
}

func (d *Descriptor) resolveSort(s Sort) (string, error) {
	field := s.Field
	if field == "" {
		field = d.DefaultSort.Field
	}
	col, ok := d.Sorts[field]
	if !ok {
		return "", errs.Validation("invalid sortBy", "sortBy must be one of "+strings.Join(d.sortFields(), ", "))
	}
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	// 以 id 作为第二排序键，保证分页稳定
	return "r." + col + dir + ", r.id" + dir, nil
}

func (d *Descriptor) sortFields() []string {
	fields := make([]string, 0, len(d.Sorts))
	for f := range d.Sorts {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (d *Descriptor) isMutable(col string) bool {
	for _, c := range d.Mutable {
		if c == col {
			return true
		}
	}
	return false
}

func (d *Descriptor) isRequired(col string) bool {
	for _, c := range d.Required {
		if c == col {
			return true
		}
	}
	return false
}

func (d *Descriptor) selectColumns() []string {
	cols := make([]string, 0, len(d.Columns)+5)
	for _, c := range d.Columns {
		cols = append(cols, "r."+c)
	}
	return append(cols,
		"COALESCE(u.username, '') AS owner_username",
		"COALESCE(u.full_name, '') AS owner_full_name",
		"COALESCE(u.avatar_url, '') AS owner_avatar_url",
		"COUNT(l.id) AS likes_count",
	)
}

func (d *Descriptor) notFound() error {
	return errs.NotFound(string(d.Kind) + " not found")
}

func (d *Descriptor) forbidden() error {
	return errs.Forbidden("only the owner can modify this " + string(d.Kind))
}
