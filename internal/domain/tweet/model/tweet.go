package model

import (
	"strings"
	"time"

	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/model"
)

// Tweet 短动态
type Tweet struct {
	model.BaseModel
	Content string `gorm:"not null" json:"content" validate:"required,max=280"`
	OwnerID string `gorm:"type:uuid;index;not null" json:"ownerId"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) SetOwner(ownerID string) {
	t.OwnerID = ownerID
}

func (t *Tweet) Normalize() {
	t.Content = strings.TrimSpace(t.Content)
}

type TweetView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	assembler.Annotations
}

// Descriptor 点赞按 tweet_id 关联到推文本身
var Descriptor = &assembler.Descriptor{
	Kind:        assembler.KindTweet,
	Table:       "tweets",
	Columns:     []string{"id", "content", "owner_id", "created_at", "updated_at"},
	LikeColumn:  "tweet_id",
	Sorts:       map[string]string{"createdAt": "created_at"},
	DefaultSort: assembler.Sort{Field: "createdAt", Desc: true},
	Mutable:     []string{"content"},
	Required:    []string{"content"},
	Rules:       map[string]string{"content": "max=280"},
}

type ContentInput struct {
	Content string `json:"content"`
}
