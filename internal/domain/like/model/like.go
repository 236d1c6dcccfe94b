package model

import (
	commentmodel "vidtube/internal/domain/comment/model"
	tweetmodel "vidtube/internal/domain/tweet/model"
	videomodel "vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/model"
)

// Like 点赞，video_id / comment_id / tweet_id 三者恰有一个非空
type Like struct {
	model.BaseModel
	VideoID   *string `gorm:"type:uuid" json:"videoId,omitempty"`
	CommentID *string `gorm:"type:uuid" json:"commentId,omitempty"`
	TweetID   *string `gorm:"type:uuid" json:"tweetId,omitempty"`
	LikedBy   string  `gorm:"type:uuid;index;not null" json:"likedBy"`
}

func (Like) TableName() string {
	return "likes"
}

// Target 可被点赞的资源
type Target struct {
	Descriptor *assembler.Descriptor
	// Param 路由参数名
	Param string
}

var (
	TargetVideo   = Target{Descriptor: videomodel.Descriptor, Param: "videoId"}
	TargetComment = Target{Descriptor: commentmodel.Descriptor, Param: "commentId"}
	TargetTweet   = Target{Descriptor: tweetmodel.Descriptor, Param: "tweetId"}
)

// Column likes 表中的外键列
func (t Target) Column() string {
	return t.Descriptor.LikeColumn
}

// NewLike 构造指向 target 的点赞
func NewLike(t Target, targetID, subjectID string) *Like {
	like := &Like{LikedBy: subjectID}
	id := targetID
	switch t.Descriptor.Kind {
	case assembler.KindVideo:
		like.VideoID = &id
	case assembler.KindComment:
		like.CommentID = &id
	case assembler.KindTweet:
		like.TweetID = &id
	}
	return like
}

// ToggleResult 切换后的状态
type ToggleResult struct {
	IsLiked bool `json:"isLiked"`
}
