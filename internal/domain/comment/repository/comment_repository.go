package repository

import (
	"context"

	"vidtube/internal/domain/comment/model"
	videomodel "vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
)

// CommentRepository 评论数据访问
type CommentRepository interface {
	ListByVideo(ctx context.Context, videoID, subjectID string, page, pageSize int) (*assembler.Page[model.CommentView], error)
	Create(ctx context.Context, subjectID string, comment *model.Comment) error
	Update(ctx context.Context, id, subjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id, subjectID string) (*model.Comment, error)
	// VideoExists 视频存在且对 subject 可见
	VideoExists(ctx context.Context, videoID, subjectID string) (bool, error)
}

type commentRepository struct {
	asm *assembler.Assembler
}

func NewCommentRepository(asm *assembler.Assembler) CommentRepository {
	return &commentRepository{asm: asm}
}

// ListByVideo 按创建时间倒序
func (r *commentRepository) ListByVideo(ctx context.Context, videoID, subjectID string, page, pageSize int) (*assembler.Page[model.CommentView], error) {
	return assembler.List[model.CommentView](ctx, r.asm, model.Descriptor, assembler.Query{
		Filters:   []assembler.Filter{assembler.Eq("video_id", videoID)},
		SubjectID: subjectID,
		Page:      page,
		PageSize:  pageSize,
		Sort:      model.Descriptor.DefaultSort,
	})
}

func (r *commentRepository) Create(ctx context.Context, subjectID string, comment *model.Comment) error {
	return r.asm.Create(ctx, model.Descriptor, subjectID, comment)
}

func (r *commentRepository) Update(ctx context.Context, id, subjectID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.asm.Mutate(ctx, model.Descriptor, assembler.Mutation{
		ID:        id,
		SubjectID: subjectID,
		Op:        assembler.OpUpdate,
		Changes:   map[string]interface{}{"content": content},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id, subjectID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.asm.Mutate(ctx, model.Descriptor, assembler.Mutation{ID: id, SubjectID: subjectID, Op: assembler.OpDelete}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) VideoExists(ctx context.Context, videoID, subjectID string) (bool, error) {
	return r.asm.Exists(ctx, videomodel.Descriptor, videoID, assembler.Visible(videomodel.Descriptor, subjectID))
}
