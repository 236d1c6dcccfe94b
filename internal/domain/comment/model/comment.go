package model

import (
	"strings"
	"time"

	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/model"
)

// Comment 视频评论
type Comment struct {
	model.BaseModel
	Content string `gorm:"not null" json:"content" validate:"required,max=1000"`
	VideoID string `gorm:"type:uuid;index;not null" json:"videoId" validate:"required"`
	OwnerID string `gorm:"type:uuid;index;not null" json:"ownerId"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) SetOwner(ownerID string) {
	c.OwnerID = ownerID
}

func (c *Comment) Normalize() {
	c.Content = strings.TrimSpace(c.Content)
}

// CommentView 评论视图记录
type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	assembler.Annotations
}

var Descriptor = &assembler.Descriptor{
	Kind:        assembler.KindComment,
	Table:       "comments",
	Columns:     []string{"id", "content", "video_id", "owner_id", "created_at", "updated_at"},
	LikeColumn:  "comment_id",
	Sorts:       map[string]string{"createdAt": "created_at"},
	DefaultSort: assembler.Sort{Field: "createdAt", Desc: true},
	Mutable:     []string{"content"},
	Required:    []string{"content"},
	Rules:       map[string]string{"content": "max=1000"},
}

// ContentInput 评论内容
type ContentInput struct {
	Content string `json:"content"`
}
