package repository

import (
	"context"

	"vidtube/internal/domain/user/model"
	"vidtube/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 接口定义
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByLogin(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.User, error)
}

// userRepository 实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建新的仓库实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户，用户名或邮箱冲突返回 Conflict
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflict("user with email or username already exists")
	}
	return errors.Wrap(err, "create user")
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, notFound(err, "get user")
	}
	return &user, nil
}

// GetByLogin 根据用户名或邮箱获取用户，空值不参与匹配
func (r *userRepository) GetByLogin(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	tx := r.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		tx = tx.Where("username = ? OR email = ?", username, email)
	case username != "":
		tx = tx.Where("username = ?", username)
	default:
		tx = tx.Where("email = ?", email)
	}
	if err := tx.Take(&user).Error; err != nil {
		return nil, notFound(err, "get user by login")
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return n > 0, nil
}

// Update 更新用户并返回最新数据
func (r *userRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.User, error) {
	var user model.User
	tx := r.db.WithContext(ctx).Model(&user).Clauses(clause.Returning{}).Where("id = ?", id).Updates(changes)
	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
		return nil, errs.Conflict("email is already in use")
	}
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "update user")
	}
	if tx.RowsAffected == 0 {
		return nil, errs.NotFound("user not found")
	}
	return &user, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("user not found")
	}
	return errors.Wrap(err, op)
}
