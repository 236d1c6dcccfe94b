package repository

import (
	"context"

	"vidtube/internal/domain/tweet/model"
	"vidtube/internal/pkg/assembler"
)

// TweetRepository 推文数据访问
type TweetRepository interface {
	ListByOwner(ctx context.Context, ownerID, subjectID string, page, pageSize int) (*assembler.Page[model.TweetView], error)
	Create(ctx context.Context, subjectID string, tweet *model.Tweet) error
	Update(ctx context.Context, id, subjectID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id, subjectID string) (*model.Tweet, error)
}

type tweetRepository struct {
	asm *assembler.Assembler
}

func NewTweetRepository(asm *assembler.Assembler) TweetRepository {
	return &tweetRepository{asm: asm}
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID, subjectID string, page, pageSize int) (*assembler.Page[model.TweetView], error) {
	return assembler.List[model.TweetView](ctx, r.asm, model.Descriptor, assembler.Query{
		Filters:   []assembler.Filter{assembler.Eq("owner_id", ownerID)},
		SubjectID: subjectID,
		Page:      page,
		PageSize:  pageSize,
		Sort:      model.Descriptor.DefaultSort,
	})
}

func (r *tweetRepository) Create(ctx context.Context, subjectID string, tweet *model.Tweet) error {
	return r.asm.Create(ctx, model.Descriptor, subjectID, tweet)
}

func (r *tweetRepository) Update(ctx context.Context, id, subjectID, content string) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.asm.Mutate(ctx, model.Descriptor, assembler.Mutation{
		ID:        id,
		SubjectID: subjectID,
		Op:        assembler.OpUpdate,
		Changes:   map[string]interface{}{"content": content},
	}, &tweet)
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id, subjectID string) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.asm.Mutate(ctx, model.Descriptor, assembler.Mutation{ID: id, SubjectID: subjectID, Op: assembler.OpDelete}, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}
