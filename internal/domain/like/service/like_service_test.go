package service

import (
	"context"
	"testing"

	"vidtube/internal/domain/like/model"
	videomodel "vidtube/internal/domain/video/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) TargetExists(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error) {
	args := m.Called(ctx, t, targetID, subjectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Toggle(ctx context.Context, t model.Target, targetID, subjectID string) (bool, error) {
	args := m.Called(ctx, t, targetID, subjectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedVideos(ctx context.Context, subjectID string, page, pageSize int) (*assembler.Page[videomodel.VideoView], error) {
	args := m.Called(ctx, subjectID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assembler.Page[videomodel.VideoView]), args.Error(1)
}

func TestToggle(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		repo := new(MockLikeRepository)
		repo.On("TargetExists", mock.Anything, model.TargetComment, "c-404", "u-1").Return(false, nil)

		_, err := NewLikeService(repo, 0).Toggle(context.Background(), model.TargetComment, "c-404", "u-1")

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		assert.Equal(t, "comment not found", errs.As(err).Message)
		repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("liked", func(t *testing.T) {
		repo := new(MockLikeRepository)
		repo.On("TargetExists", mock.Anything, model.TargetVideo, "v-1", "u-1").Return(true, nil)
		repo.On("Toggle", mock.Anything, model.TargetVideo, "v-1", "u-1").Return(true, nil)

		res, err := NewLikeService(repo, 0).Toggle(context.Background(), model.TargetVideo, "v-1", "u-1")

		require.NoError(t, err)
		assert.True(t, res.IsLiked)
	})

	t.Run("unpublished video of another owner", func(t *testing.T) {
		repo := new(MockLikeRepository)
		repo.On("TargetExists", mock.Anything, model.TargetVideo, "v-draft", "u-2").Return(false, nil)

		_, err := NewLikeService(repo, 0).Toggle(context.Background(), model.TargetVideo, "v-draft", "u-2")

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		assert.Equal(t, "video not found", errs.As(err).Message)
		repo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		repo := new(MockLikeRepository)
		_, err := NewLikeService(repo, 0).Toggle(context.Background(), model.TargetVideo, "v-1", "")
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})
}

func TestLikedVideos(t *testing.T) {
	repo := new(MockLikeRepository)
	repo.On("LikedVideos", mock.Anything, "u-1", 1, 10).Return(assembler.NewPage[videomodel.VideoView](nil, 1, 10, 0), nil)

	page, err := NewLikeService(repo, 0).LikedVideos(context.Background(), "u-1", utils.Pagination{})

	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
}
