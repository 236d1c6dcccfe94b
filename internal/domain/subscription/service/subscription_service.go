package service

import (
	"context"

	"vidtube/internal/domain/subscription/model"
	"vidtube/internal/domain/subscription/repository"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"
)

// SubscriptionService 订阅服务接口
type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (*model.ToggleResult, error)
	Subscribers(ctx context.Context, channelID string, p utils.Pagination) (*assembler.Page[model.SubscriptionView], error)
	Channels(ctx context.Context, subscriberID string, p utils.Pagination) (*assembler.Page[model.SubscriptionView], error)
}

type subscriptionService struct {
	repo     repository.SubscriptionRepository
	maxLimit int
}

func NewSubscriptionService(repo repository.SubscriptionRepository, maxLimit int) SubscriptionService {
	return &subscriptionService{repo: repo, maxLimit: maxLimit}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (*model.ToggleResult, error) {
	if subscriberID == "" {
		return nil, errs.Unauthorized("login required")
	}
	if subscriberID == channelID {
		return nil, errs.Validation("cannot subscribe to your own channel")
	}
	if err := s.requireUser(ctx, channelID, "channel not found"); err != nil {
		return nil, err
	}
	subscribed, err := s.repo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResult{Subscribed: subscribed}, nil
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID string, p utils.Pagination) (*assembler.Page[model.SubscriptionView], error) {
	if err := s.requireUser(ctx, channelID, "channel not found"); err != nil {
		return nil, err
	}
	p.Normalize(s.maxLimit)
	return s.repo.Subscribers(ctx, channelID, p.Page, p.Limit)
}

func (s *subscriptionService) Channels(ctx context.Context, subscriberID string, p utils.Pagination) (*assembler.Page[model.SubscriptionView], error) {
	if err := s.requireUser(ctx, subscriberID, "subscriber not found"); err != nil {
		return nil, err
	}
	p.Normalize(s.maxLimit)
	return s.repo.Channels(ctx, subscriberID, p.Page, p.Limit)
}

func (s *subscriptionService) requireUser(ctx context.Context, id, msg string) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound(msg)
	}
	return nil
}
