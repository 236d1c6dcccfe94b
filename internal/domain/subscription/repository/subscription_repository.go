package repository

import (
	"context"

	"vidtube/internal/domain/subscription/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository 订阅数据访问
type SubscriptionRepository interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	// Subscribers 订阅了 channel 的用户
	Subscribers(ctx context.Context, channelID string, page, pageSize int) (*assembler.Page[model.SubscriptionView], error)
	// Channels subscriber 订阅的频道
	Channels(ctx context.Context, subscriberID string, page, pageSize int) (*assembler.Page[model.SubscriptionView], error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("users").Where("id = ?", userID).Limit(1).Count(&n).Error; err != nil {
		return false, errs.Internal(errors.Wrap(err, "check user"))
	}
	return n > 0, nil
}

// Toggle 已订阅则取消，否则插入
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if tx.Error != nil {
		return false, errs.Internal(errors.Wrap(tx.Error, "unsubscribe"))
	}
	if tx.RowsAffected > 0 {
		return false, nil
	}

	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
		return false, errs.Internal(errors.Wrap(err, "subscribe"))
	}
	return true, nil
}

func (r *subscriptionRepository) Subscribers(ctx context.Context, channelID string, page, pageSize int) (*assembler.Page[model.SubscriptionView], error) {
	return r.list(ctx, "channel_id", "subscriber_id", channelID, page, pageSize)
}

func (r *subscriptionRepository) Channels(ctx context.Context, subscriberID string, page, pageSize int) (*assembler.Page[model.SubscriptionView], error) {
	return r.list(ctx, "subscriber_id", "channel_id", subscriberID, page, pageSize)
}

// list 按 filterCol 过滤，关联 userCol 指向的用户，订阅时间倒序
func (r *subscriptionRepository) list(ctx context.Context, filterCol, userCol, id string, page, pageSize int) (*assembler.Page[model.SubscriptionView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table("subscriptions AS s").
			Joins("JOIN users u ON u.id = s."+userCol).
			Where("s."+filterCol+" = ?", id)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, errs.Internal(errors.Wrap(err, "count subscriptions"))
	}
	offset := (page - 1) * pageSize
	if int64(offset) >= total {
		return assembler.NewPage[model.SubscriptionView](nil, page, pageSize, total), nil
	}

	items := make([]model.SubscriptionView, 0, pageSize)
	err := base().
		Select("u.id, u.username, u.full_name, u.avatar_url, s.created_at AS subscribed_at").
		Order("s.created_at DESC, s.id DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&items).Error
	if err != nil {
		return nil, errs.Internal(errors.Wrap(err, "list subscriptions"))
	}
	return assembler.NewPage(items, page, pageSize, total), nil
}
