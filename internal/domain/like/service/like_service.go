package service

import (
	"context"

	"vidtube/internal/domain/like/model"
	"vidtube/internal/domain/like/repository"
	videomodel "vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"
)

// LikeService 点赞服务接口
type LikeService interface {
	Toggle(ctx context.Context, t model.Target, targetID, subjectID string) (*model.ToggleResult, error)
	LikedVideos(ctx context.Context, subjectID string, p utils.Pagination) (*assembler.Page[videomodel.VideoView], error)
}

type likeService struct {
	repo     repository.LikeRepository
	maxLimit int
}

func NewLikeService(repo repository.LikeRepository, maxLimit int) LikeService {
	return &likeService{repo: repo, maxLimit: maxLimit}
}

// Toggle 目标不存在时返回 404
func (s *likeService) Toggle(ctx context.Context, t model.Target, targetID, subjectID string) (*model.ToggleResult, error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	ok, err := s.repo.TargetExists(ctx, t, targetID, subjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NotFound(string(t.Descriptor.Kind) + " not found")
	}
	liked, err := s.repo.Toggle(ctx, t, targetID, subjectID)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResult{IsLiked: liked}, nil
}

func (s *likeService) LikedVideos(ctx context.Context, subjectID string, p utils.Pagination) (*assembler.Page[videomodel.VideoView], error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	p.Normalize(s.maxLimit)
	return s.repo.LikedVideos(ctx, subjectID, p.Page, p.Limit)
}
