package assembler

import (
	"context"
	"reflect"
	"strings"

	"vidtube/pkg/errs"
	"vidtube/pkg/validate"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Owner 资源所有者的公开信息
type Owner struct {
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// Annotations 每条视图记录附带的聚合字段，嵌入到各资源的 View 中
type Annotations struct {
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
	Owner      Owner `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// Resource 可由 Create 持久化的资源
type Resource interface {
	SetOwner(ownerID string)
	// Normalize 去除文本字段首尾空白
	Normalize()
}

// Op mutateResource 的操作类型
type Op int

const (
	OpUpdate Op = iota
	OpDelete
	OpToggleFlag
)

// Mutation 针对单个资源的修改请求
type Mutation struct {
	ID        string
	SubjectID string
	Op        Op
	// Changes 列名 -> 新值，仅 OpUpdate 使用
	Changes map[string]interface{}
}

// Assembler 组装分页视图并执行带所有权校验的修改
type Assembler struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// DB 返回底层连接，供各模块仓库执行非视图查询
func (a *Assembler) DB() *gorm.DB {
	return a.db
}

// ParseID 校验路径中的资源 ID
func ParseID(raw, name string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errs.Validation("invalid "+name, name+" must be a valid id")
	}
	return id.String(), nil
}

// List 按 q 过滤、关联所有者与点赞、排序分页后返回视图记录
func List[R any](ctx context.Context, a *Assembler, d *Descriptor, q Query) (*Page[R], error) {
	if q.Page < 1 || q.PageSize < 1 {
		return nil, errs.Validation("invalid pagination", "page and limit must be positive")
	}
	order, err := d.resolveSort(q.Sort)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := a.base(ctx, d, q.Filters).Count(&total).Error; err != nil {
		return nil, errs.Internal(errors.Wrapf(err, "count %s", d.Kind))
	}

	offset, ok := window(q.Page, q.PageSize, total)
	if !ok {
		return NewPage[R](nil, q.Page, q.PageSize, total), nil
	}

	sel, args := selectClause(d, q.SubjectID)
	items := make([]R, 0, q.PageSize)
	err = a.base(ctx, d, q.Filters).
		Select(sel, args...).
		Joins("LEFT JOIN users u ON u.id = r." + ownerColumn).
		Joins("LEFT JOIN likes l ON l." + d.LikeColumn + " = r.id").
		Group("r.id, u.id").
		Order(order).
		Offset(offset).
		Limit(q.PageSize).
		Scan(&items).Error
	if err != nil {
		return nil, errs.Internal(errors.Wrapf(err, "list %s", d.Kind))
	}
	return NewPage(items, q.Page, q.PageSize, total), nil
}

// One 返回单个视图记录，不存在或被 filters 排除时返回 NotFound
func One[R any](ctx context.Context, a *Assembler, d *Descriptor, id, subjectID string, filters ...Filter) (*R, error) {
	q := Query{
		Filters:   append([]Filter{Eq("id", id)}, filters...),
		SubjectID: subjectID,
		Page:      1,
		PageSize:  1,
		Sort:      d.DefaultSort,
	}
	page, err := List[R](ctx, a, d, q)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, d.notFound()
	}
	return &page.Items[0], nil
}

func (a *Assembler) base(ctx context.Context, d *Descriptor, filters []Filter) *gorm.DB {
	tx := a.db.WithContext(ctx).Table(d.Table + " AS r")
	for _, f := range filters {
		tx = f(tx)
	}
	return tx
}

// selectClause 匿名请求时 is_liked 恒为 false
func selectClause(d *Descriptor, subjectID string) (string, []interface{}) {
	cols := strings.Join(d.selectColumns(), ", ")
	if subjectID == "" {
		return cols + ", false AS is_liked", nil
	}
	return cols + ", COALESCE(BOOL_OR(l.liked_by = ?), false) AS is_liked", []interface{}{subjectID}
}

// Create 校验并持久化新资源，所有者为 subjectID
func (a *Assembler) Create(ctx context.Context, d *Descriptor, subjectID string, res Resource) error {
	if subjectID == "" {
		return errs.Unauthorized("login required")
	}
	res.Normalize()
	res.SetOwner(subjectID)
	if err := validate.Struct(res); err != nil {
		return err
	}
	if err := a.db.WithContext(ctx).Create(res).Error; err != nil {
		return errs.Internal(errors.Wrapf(err, "create %s", d.Kind))
	}
	return nil
}

// Find 按 id 读取原始资源
func (a *Assembler) Find(ctx context.Context, d *Descriptor, id string, dest interface{}) error {
	err := a.db.WithContext(ctx).Table(d.Table).Where("id = ?", id).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.notFound()
	}
	if err != nil {
		return errs.Internal(errors.Wrapf(err, "find %s", d.Kind))
	}
	return nil
}

// Exists 资源是否存在且满足 filters（如 Visible）
func (a *Assembler) Exists(ctx context.Context, d *Descriptor, id string, filters ...Filter) (bool, error) {
	var n int64
	if err := a.base(ctx, d, append([]Filter{Eq("id", id)}, filters...)).Count(&n).Error; err != nil {
		return false, errs.Internal(errors.Wrapf(err, "check %s", d.Kind))
	}
	return n > 0, nil
}

type ownerRow struct {
	OwnerID string
}

// Authorize 只做存在性与所有权校验，不写入
func (a *Assembler) Authorize(ctx context.Context, d *Descriptor, id, subjectID string) error {
	var row ownerRow
	err := a.db.WithContext(ctx).Table(d.Table).Select(ownerColumn).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.notFound()
	}
	if err != nil {
		return errs.Internal(errors.Wrapf(err, "check %s", d.Kind))
	}
	if row.OwnerID != subjectID {
		return d.forbidden()
	}
	return nil
}

// Mutate 以单条 id + owner 条件语句执行修改，dest 接收修改后（或删除前）的记录
func (a *Assembler) Mutate(ctx context.Context, d *Descriptor, m Mutation, dest interface{}) error {
	if m.SubjectID == "" {
		return errs.Unauthorized("login required")
	}

	tx := a.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND "+ownerColumn+" = ?", m.ID, m.SubjectID)

	switch m.Op {
	case OpUpdate:
		changes, err := d.sanitize(m.Changes)
		if err != nil {
			return err
		}
		tx = tx.Model(dest).Updates(changes)
	case OpToggleFlag:
		if d.FlagColumn == "" {
			return errs.Validation("toggle is not supported for " + string(d.Kind))
		}
		tx = tx.Model(dest).Update(d.FlagColumn, gorm.Expr("NOT "+d.FlagColumn))
	case OpDelete:
		tx = tx.Delete(dest)
	default:
		return errs.Validation("unknown operation")
	}

	if tx.Error != nil {
		return errs.Internal(errors.Wrapf(tx.Error, "mutate %s", d.Kind))
	}
	if tx.RowsAffected == 0 {
		// gorm 会把 Updates 的值写回 dest，未命中时清空
		reset(dest)
		// 没有匹配行：区分不存在与非所有者
		if err := a.Authorize(ctx, d, m.ID, m.SubjectID); err != nil {
			return err
		}
		return d.notFound()
	}
	return nil
}

func (d *Descriptor) sanitize(changes map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(changes))
	var details []string
	for col, v := range changes {
		if !d.isMutable(col) {
			details = append(details, col+" cannot be updated")
			continue
		}
		if s, ok := v.(string); ok {
			s = strings.TrimSpace(s)
			if s == "" && d.isRequired(col) {
				details = append(details, col+" is required")
				continue
			}
			v = s
		}
		if rule, ok := d.Rules[col]; ok {
			if err := validate.Var(col, v, rule); err != nil {
				details = append(details, errs.As(err).Details...)
				continue
			}
		}
		out[col] = v
	}
	if len(details) > 0 {
		return nil, errs.Validation("invalid input", details...)
	}
	if len(out) == 0 {
		return nil, errs.Validation("nothing to update")
	}
	return out, nil
}

func reset(dest interface{}) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	v.Elem().Set(reflect.Zero(v.Elem().Type()))
}
