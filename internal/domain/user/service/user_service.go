package service

import (
	"context"
	"mime/multipart"
	"time"

	"vidtube/internal/domain/user/model"
	"vidtube/internal/domain/user/repository"
	"vidtube/internal/pkg/uploader"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"
	"vidtube/pkg/validate"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// Cleaner 异步删除不再引用的媒体
type Cleaner interface {
	Enqueue(urls ...string)
}

// TokenConfig JWT 签发参数
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// UserService 用户服务接口
type UserService interface {
	Register(ctx context.Context, in model.RegisterInput, avatar, cover *multipart.FileHeader) (*model.User, error)
	Login(ctx context.Context, in model.LoginInput) (*model.LoginResult, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateAccount(ctx context.Context, id string, in model.UpdateInput) (*model.User, error)
	ChangePassword(ctx context.Context, id string, in model.ChangePasswordInput) error
	UpdateAvatar(ctx context.Context, id string, avatar *multipart.FileHeader) (*model.User, error)
}

// userService 实现
type userService struct {
	repo    repository.UserRepository
	media   uploader.MediaStore
	cleaner Cleaner
	token   TokenConfig
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, media uploader.MediaStore, cleaner Cleaner, token TokenConfig) UserService {
	return &userService{repo: repo, media: media, cleaner: cleaner, token: token}
}

// Register 注册：校验 -> 查重 -> 上传头像/封面 -> 入库
func (s *userService) Register(ctx context.Context, in model.RegisterInput, avatar, cover *multipart.FileHeader) (*model.User, error) {
	in.Normalize()
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	if avatar == nil {
		return nil, errs.Validation("avatar file is required", "avatar is required")
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("user with email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	var avatarObj, coverObj uploader.MediaObject
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		avatarObj, err = s.media.Put(gctx, avatar)
		return err
	})
	if cover != nil {
		g.Go(func() (err error) {
			coverObj, err = s.media.Put(gctx, cover)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.cleaner.Enqueue(avatarObj.URL, coverObj.URL)
		return nil, errs.Dependency("failed to upload profile images", err)
	}

	user := &model.User{
		Username:      in.Username,
		Email:         in.Email,
		FullName:      in.FullName,
		AvatarURL:     avatarObj.URL,
		CoverImageURL: coverObj.URL,
		Password:      string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.cleaner.Enqueue(avatarObj.URL, coverObj.URL)
		return nil, err
	}
	return user, nil
}

// Login 用户名或邮箱 + 密码登录
func (s *userService) Login(ctx context.Context, in model.LoginInput) (*model.LoginResult, error) {
	in.Normalize()
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByLogin(ctx, in.Username, in.Email)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil, errs.NotFound("user does not exist")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, errs.Unauthorized("invalid user credentials")
	}

	token, expireAt, err := utils.GenerateToken(s.token.Secret, user.ID, user.Username, s.token.TTL)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}
	return &model.LoginResult{User: user, AccessToken: token, ExpiresAt: *expireAt}, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateAccount 更新姓名与邮箱
func (s *userService) UpdateAccount(ctx context.Context, id string, in model.UpdateInput) (*model.User, error) {
	in.Normalize()
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, map[string]interface{}{
		"full_name": in.FullName,
		"email":     in.Email,
	})
}

// ChangePassword 校验旧密码后设置新密码
func (s *userService) ChangePassword(ctx context.Context, id string, in model.ChangePasswordInput) error {
	if err := validate.Struct(&in); err != nil {
		return err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)) != nil {
		return errs.Validation("invalid old password", "oldPassword is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	_, err = s.repo.Update(ctx, id, map[string]interface{}{"password": string(hash)})
	return err
}

// UpdateAvatar 上传新头像，旧头像交给清理队列
func (s *userService) UpdateAvatar(ctx context.Context, id string, avatar *multipart.FileHeader) (*model.User, error) {
	if avatar == nil {
		return nil, errs.Validation("avatar file is required", "avatar is required")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.media.Put(ctx, avatar)
	if err != nil {
		return nil, errs.Dependency("failed to upload avatar", err)
	}
	user, err := s.repo.Update(ctx, id, map[string]interface{}{"avatar_url": obj.URL})
	if err != nil {
		s.cleaner.Enqueue(obj.URL)
		return nil, err
	}
	s.cleaner.Enqueue(current.AvatarURL)
	return user, nil
}
