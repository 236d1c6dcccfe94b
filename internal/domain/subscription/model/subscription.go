package model

import (
	"time"

	"vidtube/pkg/model"
)

// Subscription 订阅关系，subscriber 关注 channel（均为用户）
type Subscription struct {
	model.BaseModel
	SubscriberID string `gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel" json:"subscriberId"`
	ChannelID    string `gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel;index" json:"channelId"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionView 订阅列表中的用户
type SubscriptionView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	AvatarURL    string    `json:"avatarUrl"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// ToggleResult 切换后的状态
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}
