package repository

import (
	"context"

	"vidtube/internal/domain/like/model"
	videomodel "vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository 点赞数据访问
type LikeRepository interface {
	// TargetExists 目标存在且对 subject 可见，未发布视频只对所有者可见
	TargetExists(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error)
	Toggle(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error)
	LikedVideos(ctx context.Context, subjectID string, page, pageSize int) (*assembler.Page[videomodel.VideoView], error)
}

type likeRepository struct {
	asm *assembler.Assembler
	db  *gorm.DB
}

func NewLikeRepository(asm *assembler.Assembler) LikeRepository {
	return &likeRepository{asm: asm, db: asm.DB()}
}

func (r *likeRepository) TargetExists(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error) {
	return r.asm.Exists(ctx, t.Descriptor, targetID, assembler.Visible(t.Descriptor, subjectID))
}

// Toggle 已点赞则取消，否则插入；唯一索引保证并发下不会重复
func (r *likeRepository) Toggle(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where(t.Column()+" = ? AND liked_by = ?", targetID, subjectID).
		Delete(&model.Like{})
	if tx.Error != nil {
		return false, errs.Internal(errors.Wrap(tx.Error, "unlike"))
	}
	if tx.RowsAffected > 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewLike(t, targetID, subjectID)).Error
	if err != nil {
		return false, errs.Internal(errors.Wrap(err, "like"))
	}
	return true, nil
}

// LikedVideos subject 点赞过且可见的视频
func (r *likeRepository) LikedVideos(ctx context.Context, subjectID string, page, pageSize int) (*assembler.Page[videomodel.VideoView], error) {
	likedBy := func(db *gorm.DB) *gorm.DB {
		return db.Where("r.id IN (SELECT video_id FROM likes WHERE liked_by = ? AND video_id IS NOT NULL)", subjectID)
	}
	return assembler.List[videomodel.VideoView](ctx, r.asm, videomodel.Descriptor, assembler.Query{
		Filters:   []assembler.Filter{likedBy, assembler.Visible(videomodel.Descriptor, subjectID)},
		SubjectID: subjectID,
		Page:      page,
		PageSize:  pageSize,
		Sort:      videomodel.Descriptor.DefaultSort,
	})
}
