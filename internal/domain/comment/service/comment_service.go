package service

import (
	"context"

	"vidtube/internal/domain/comment/model"
	"vidtube/internal/domain/comment/repository"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"
)

// CommentService 评论服务接口
type CommentService interface {
	ListComments(ctx context.Context, videoID, subjectID string, p utils.Pagination) (*assembler.Page[model.CommentView], error)
	AddComment(ctx context.Context, videoID, subjectID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, id, subjectID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id, subjectID string) (*model.Comment, error)
}

type commentService struct {
	repo     repository.CommentRepository
	maxLimit int
}

func NewCommentService(repo repository.CommentRepository, maxLimit int) CommentService {
	return &commentService{repo: repo, maxLimit: maxLimit}
}

// ListComments 视频不存在或对 subject 不可见时返回 404
func (s *commentService) ListComments(ctx context.Context, videoID, subjectID string, p utils.Pagination) (*assembler.Page[model.CommentView], error) {
	if err := s.requireVideo(ctx, videoID, subjectID); err != nil {
		return nil, err
	}
	p.Normalize(s.maxLimit)
	return s.repo.ListByVideo(ctx, videoID, subjectID, p.Page, p.Limit)
}

func (s *commentService) AddComment(ctx context.Context, videoID, subjectID, content string) (*model.Comment, error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	if err := s.requireVideo(ctx, videoID, subjectID); err != nil {
		return nil, err
	}
	comment := &model.Comment{Content: content, VideoID: videoID}
	if err := s.repo.Create(ctx, subjectID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, id, subjectID, content string) (*model.Comment, error) {
	return s.repo.Update(ctx, id, subjectID, content)
}

func (s *commentService) DeleteComment(ctx context.Context, id, subjectID string) (*model.Comment, error) {
	return s.repo.Delete(ctx, id, subjectID)
}

func (s *commentService) requireVideo(ctx context.Context, videoID, subjectID string) error {
	ok, err := s.repo.VideoExists(ctx, videoID, subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("video not found")
	}
	return nil
}
