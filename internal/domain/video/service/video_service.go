package service

import (
	"context"
	"mime/multipart"

	"vidtube/internal/domain/video/model"
	"vidtube/internal/domain/video/repository"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/config"
	"vidtube/internal/pkg/uploader"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"
	"vidtube/pkg/validate"

	"golang.org/x/sync/errgroup"
)

// Cleaner 异步删除不再引用的媒体
type Cleaner interface {
	Enqueue(urls ...string)
}

// Options 视频服务参数
type Options struct {
	// DeletePolicy media-first 或 record-first
	DeletePolicy string
	MaxLimit     int
}

// VideoService 视频服务接口
type VideoService interface {
	ListVideos(ctx context.Context, q utils.ListQuery, subjectID string) (*assembler.Page[model.VideoView], error)
	GetVideo(ctx context.Context, id, subjectID string) (*model.VideoView, error)
	PublishVideo(ctx context.Context, subjectID string, in model.PublishInput, videoFile, thumbnail *multipart.FileHeader) (*model.Video, error)
	UpdateVideo(ctx context.Context, id, subjectID string, in model.UpdateInput, thumbnail *multipart.FileHeader) (*model.Video, error)
	DeleteVideo(ctx context.Context, id, subjectID string) (*model.Video, error)
	TogglePublish(ctx context.Context, id, subjectID string) (*model.Video, error)
}

type videoService struct {
	repo    repository.VideoRepository
	media   uploader.MediaStore
	cleaner Cleaner
	opts    Options
}

// NewVideoService 创建视频服务
func NewVideoService(repo repository.VideoRepository, media uploader.MediaStore, cleaner Cleaner, opts Options) VideoService {
	if opts.DeletePolicy == "" {
		opts.DeletePolicy = config.DeleteMediaFirst
	}
	return &videoService{repo: repo, media: media, cleaner: cleaner, opts: opts}
}

// ListVideos 已发布或属于当前用户的视频，支持全文检索、按作者过滤与排序
func (s *videoService) ListVideos(ctx context.Context, q utils.ListQuery, subjectID string) (*assembler.Page[model.VideoView], error) {
	q.Normalize(s.opts.MaxLimit)

	filters := []assembler.Filter{
		assembler.Visible(model.Descriptor, subjectID),
		assembler.TextSearch(model.SearchColumns, q.Query),
	}
	if q.UserID != "" {
		ownerID, err := assembler.ParseID(q.UserID, "userId")
		if err != nil {
			return nil, err
		}
		filters = append(filters, assembler.Eq("owner_id", ownerID))
	}

	return s.repo.List(ctx, assembler.Query{
		Filters:   filters,
		SubjectID: subjectID,
		Page:      q.Page,
		PageSize:  q.Limit,
		Sort:      assembler.Sort{Field: q.SortBy, Desc: q.IsDesc()},
	})
}

func (s *videoService) GetVideo(ctx context.Context, id, subjectID string) (*model.VideoView, error) {
	return s.repo.GetView(ctx, id, subjectID)
}

// PublishVideo 并行上传视频与封面后入库，入库失败时清理已上传的对象
func (s *videoService) PublishVideo(ctx context.Context, subjectID string, in model.PublishInput, videoFile, thumbnail *multipart.FileHeader) (*model.Video, error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	in.Normalize()
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	var missing []string
	if videoFile == nil {
		missing = append(missing, "videoFile is required")
	}
	if thumbnail == nil {
		missing = append(missing, "thumbnail is required")
	}
	if len(missing) > 0 {
		return nil, errs.Validation("media files are missing", missing...)
	}

	var videoObj, thumbObj uploader.MediaObject
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		videoObj, err = s.media.Put(gctx, videoFile)
		return err
	})
	g.Go(func() (err error) {
		thumbObj, err = s.media.Put(gctx, thumbnail)
		return err
	})
	if err := g.Wait(); err != nil {
		s.cleaner.Enqueue(videoObj.URL, thumbObj.URL)
		return nil, errs.Dependency("failed to upload video media", err)
	}

	duration := in.Duration
	if videoObj.Duration > 0 {
		duration = videoObj.Duration
	}
	video := &model.Video{
		VideoFile:   videoObj.URL,
		Thumbnail:   thumbObj.URL,
		Title:       in.Title,
		Description: in.Description,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.repo.Create(ctx, subjectID, video); err != nil {
		s.cleaner.Enqueue(videoObj.URL, thumbObj.URL)
		return nil, err
	}
	return video, nil
}

// UpdateVideo 先校验所有权再上传新封面，成功后旧封面进入清理队列
func (s *videoService) UpdateVideo(ctx context.Context, id, subjectID string, in model.UpdateInput, thumbnail *multipart.FileHeader) (*model.Video, error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	changes := in.Changes()
	if len(changes) == 0 && thumbnail == nil {
		return nil, errs.Validation("nothing to update", "provide title, description or thumbnail")
	}
	if err := s.repo.Authorize(ctx, id, subjectID); err != nil {
		return nil, err
	}

	var oldThumbnail, newThumbnail string
	if thumbnail != nil {
		current, err := s.repo.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		oldThumbnail = current.Thumbnail

		obj, err := s.media.Put(ctx, thumbnail)
		if err != nil {
			return nil, errs.Dependency("failed to upload thumbnail", err)
		}
		newThumbnail = obj.URL
		changes["thumbnail"] = newThumbnail
	}

	video, err := s.repo.Update(ctx, id, subjectID, changes)
	if err != nil {
		s.cleaner.Enqueue(newThumbnail)
		return nil, err
	}
	if newThumbnail != "" && oldThumbnail != newThumbnail {
		s.cleaner.Enqueue(oldThumbnail)
	}
	return video, nil
}

// DeleteVideo 按配置的策略删除视频及其媒体
func (s *videoService) DeleteVideo(ctx context.Context, id, subjectID string) (*model.Video, error) {
	if subjectID == "" {
		return nil, errs.Unauthorized("login required")
	}
	if s.opts.DeletePolicy == config.DeleteRecordFirst {
		return s.deleteRecordFirst(ctx, id, subjectID)
	}
	return s.deleteMediaFirst(ctx, id, subjectID)
}

// deleteMediaFirst 媒体删除失败时记录保持不变
func (s *videoService) deleteMediaFirst(ctx context.Context, id, subjectID string) (*model.Video, error) {
	if err := s.repo.Authorize(ctx, id, subjectID); err != nil {
		return nil, err
	}
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range []string{current.VideoFile, current.Thumbnail} {
		if u == "" {
			continue
		}
		u := u
		g.Go(func() error { return s.media.Delete(gctx, u) })
	}
	if err := g.Wait(); err != nil {
		return nil, errs.Dependency("failed to delete video media", err)
	}

	return s.repo.Delete(ctx, id, subjectID)
}

// deleteRecordFirst 先删记录，媒体交给清理队列
func (s *videoService) deleteRecordFirst(ctx context.Context, id, subjectID string) (*model.Video, error) {
	video, err := s.repo.Delete(ctx, id, subjectID)
	if err != nil {
		return nil, err
	}
	s.cleaner.Enqueue(video.VideoFile, video.Thumbnail)
	return video, nil
}

func (s *videoService) TogglePublish(ctx context.Context, id, subjectID string) (*model.Video, error) {
	return s.repo.TogglePublish(ctx, id, subjectID)
}
