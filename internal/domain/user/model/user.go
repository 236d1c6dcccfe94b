package model

import (
	"strings"
	"time"

	"vidtube/pkg/model"
)

// User 用户模型
type User struct {
	model.BaseModel
	Username      string `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email         string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName      string `gorm:"size:100;not null" json:"fullName"`
	AvatarURL     string `gorm:"not null" json:"avatarUrl"`
	CoverImageURL string `json:"coverImageUrl"`
	Password      string `gorm:"not null" json:"-"` // 密码不返回给前端
}

func (User) TableName() string {
	return "users"
}

// RegisterInput 注册输入（multipart 表单）
type RegisterInput struct {
	FullName string `form:"fullName" json:"fullName" validate:"required,max=100"`
	Email    string `form:"email" json:"email" validate:"required,email,max=255"`
	Username string `form:"username" json:"username" validate:"required,min=3,max=30"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

func (in *RegisterInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
}

// LoginInput 登录输入，username 与 email 二选一
type LoginInput struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=Username"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Normalize() {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// UpdateInput 账户信息修改
type UpdateInput struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

func (in *UpdateInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// ChangePasswordInput 修改密码
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// LoginResult 登录结果
type LoginResult struct {
	User        *User     `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
