package repository

import (
	"context"

	"vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
)

// VideoRepository 视频数据访问
type VideoRepository interface {
	List(ctx context.Context, q assembler.Query) (*assembler.Page[model.VideoView], error)
	GetView(ctx context.Context, id, subjectID string) (*model.VideoView, error)
	Create(ctx context.Context, subjectID string, video *model.Video) error
	Find(ctx context.Context, id string) (*model.Video, error)
	Authorize(ctx context.Context, id, subjectID string) error
	Update(ctx context.Context, id, subjectID string, changes map[string]interface{}) (*model.Video, error)
	Delete(ctx context.Context, id, subjectID string) (*model.Video, error)
	TogglePublish(ctx context.Context, id, subjectID string) (*model.Video, error)
}

type videoRepository struct {
	asm *assembler.Assembler
}

// NewVideoRepository 基于 Assembler 的视频仓库
func NewVideoRepository(asm *assembler.Assembler) VideoRepository {
	return &videoRepository{asm: asm}
}

func (r *videoRepository) List(ctx context.Context, q assembler.Query) (*assembler.Page[model.VideoView], error) {
	return assembler.List[model.VideoView](ctx, r.asm, model.Descriptor, q)
}

// GetView 未发布且不属于 subject 的视频视为不存在
func (r *videoRepository) GetView(ctx context.Context, id, subjectID string) (*model.VideoView, error) {
	return assembler.One[model.VideoView](ctx, r.asm, model.Descriptor, id, subjectID,
		assembler.Visible(model.Descriptor, subjectID))
}

func (r *videoRepository) Create(ctx context.Context, subjectID string, video *model.Video) error {
	return r.asm.Create(ctx, model.Descriptor, subjectID, video)
}

func (r *videoRepository) Find(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	if err := r.asm.Find(ctx, model.Descriptor, id, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Authorize(ctx context.Context, id, subjectID string) error {
	return r.asm.Authorize(ctx, model.Descriptor, id, subjectID)
}

func (r *videoRepository) Update(ctx context.Context, id, subjectID string, changes map[string]interface{}) (*model.Video, error) {
	return r.mutate(ctx, assembler.Mutation{ID: id, SubjectID: subjectID, Op: assembler.OpUpdate, Changes: changes})
}

// Delete 返回被删除的记录，用于后续清理媒体
func (r *videoRepository) Delete(ctx context.Context, id, subjectID string) (*model.Video, error) {
	return r.mutate(ctx, assembler.Mutation{ID: id, SubjectID: subjectID, Op: assembler.OpDelete})
}

func (r *videoRepository) TogglePublish(ctx context.Context, id, subjectID string) (*model.Video, error) {
	return r.mutate(ctx, assembler.Mutation{ID: id, SubjectID: subjectID, Op: assembler.OpToggleFlag})
}

func (r *videoRepository) mutate(ctx context.Context, m assembler.Mutation) (*model.Video, error) {
	var video model.Video
	if err := r.asm.Mutate(ctx, model.Descriptor, m, &video); err != nil {
		return nil, err
	}
	return &video, nil
}
