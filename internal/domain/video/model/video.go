package model

import (
	"strings"
	"time"

	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/model"
)

// Video 视频
type Video struct {
	model.BaseModel
	VideoFile   string  `gorm:"not null" json:"videoFile" validate:"required"`
	Thumbnail   string  `gorm:"not null" json:"thumbnail" validate:"required"`
	Title       string  `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string  `gorm:"not null" json:"description" validate:"required,max=5000"`
	Duration    float64 `gorm:"not null;default:0" json:"duration" validate:"gte=0"`
	Views       int64   `gorm:"not null;default:0" json:"views"`
	IsPublished bool    `gorm:"not null" json:"isPublished"`
	OwnerID     string  `gorm:"type:uuid;index;not null" json:"ownerId"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) SetOwner(ownerID string) {
	v.OwnerID = ownerID
}

func (v *Video) Normalize() {
	v.Title = strings.TrimSpace(v.Title)
	v.Description = strings.TrimSpace(v.Description)
}

// VideoView 列表与详情返回的视图记录
type VideoView struct {
	ID          string    `json:"id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	assembler.Annotations
}

// Descriptor 视频资源的查询与修改规则
var Descriptor = &assembler.Descriptor{
	Kind:  assembler.KindVideo,
	Table: "videos",
	Columns: []string{
		"id", "video_file", "thumbnail", "title", "description", "duration",
		"views", "is_published", "owner_id", "created_at", "updated_at",
	},
	LikeColumn: "video_id",
	Sorts: map[string]string{
		"createdAt": "created_at",
		"duration":  "duration",
		"views":     "views",
	},
	DefaultSort: assembler.Sort{Field: "createdAt", Desc: true},
	Mutable:     []string{"title", "description", "thumbnail"},
	Required:    []string{"title", "description", "thumbnail"},
	Rules:       map[string]string{"title": "max=200", "description": "max=5000"},
	FlagColumn:  "is_published",
}

// SearchColumns 全文检索的列
var SearchColumns = []string{"title", "description"}

// PublishInput 发布视频（multipart 表单）
type PublishInput struct {
	Title       string  `form:"title" json:"title" validate:"required,max=200"`
	Description string  `form:"description" json:"description" validate:"required,max=5000"`
	Duration    float64 `form:"duration" json:"duration" validate:"gte=0"`
}

func (in *PublishInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// UpdateInput 修改视频，未提供的字段保持不变
type UpdateInput struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
}

// Changes 转为列 -> 值
func (in UpdateInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	return changes
}
