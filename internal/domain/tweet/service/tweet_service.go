package service

import (
	"context"

	"vidtube/internal/domain/tweet/model"
	"vidtube/internal/domain/tweet/repository"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/utils"
)

// TweetService 推文服务接口
type TweetService interface {
	CreateTweet(ctx context.Context, subjectID, content string) (*model.Tweet, error)
	ListUserTweets(ctx context.Context, ownerID, subjectID string, p utils.Pagination) (*assembler.Page[model.TweetView], error)
	UpdateTweet(ctx context.Context, id, subjectID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, id, subjectID string) (*model.Tweet, error)
}

type tweetService struct {
	repo     repository.TweetRepository
	maxLimit int
}

func NewTweetService(repo repository.TweetRepository, maxLimit int) TweetService {
	return &tweetService{repo: repo, maxLimit: maxLimit}
}

func (s *tweetService) CreateTweet(ctx context.Context, subjectID, content string) (*model.Tweet, error) {
	tweet := &model.Tweet{Content: content}
	if err := s.repo.Create(ctx, subjectID, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListUserTweets 用户不存在时返回空列表
func (s *tweetService) ListUserTweets(ctx context.Context, ownerID, subjectID string, p utils.Pagination) (*assembler.Page[model.TweetView], error) {
	p.Normalize(s.maxLimit)
	return s.repo.ListByOwner(ctx, ownerID, subjectID, p.Page, p.Limit)
}

func (s *tweetService) UpdateTweet(ctx context.Context, id, subjectID, content string) (*model.Tweet, error) {
	return s.repo.Update(ctx, id, subjectID, content)
}

func (s *tweetService) DeleteTweet(ctx context.Context, id, subjectID string) (*model.Tweet, error) {
	return s.repo.Delete(ctx, id, subjectID)
}
