package uploader

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"vidtube/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MediaObject 上传结果
type MediaObject struct {
	URL string `json:"url"`
	// Duration 秒，由客户端表单提供，存储本身不解析媒体
	Duration float64 `json:"duration,omitempty"`
}

// MediaStore 外部媒体存储
type MediaStore interface {
	Put(ctx context.Context, file *multipart.FileHeader) (MediaObject, error)
	Delete(ctx context.Context, objectURL string) error
}

// bucketAPI 便于测试替换 *oss.Bucket
type bucketAPI interface {
	PutObject(objectKey string, reader io.Reader, options ...oss.Option) error
	DeleteObject(objectKey string, options ...oss.Option) error
}

type AliyunOSSUploader struct {
	bucket  bucketAPI
	baseURL string
}

func NewAliyunOSSUploader(cfg config.OSSConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return newUploader(bucket, cfg), nil
}

func newUploader(bucket bucketAPI, cfg config.OSSConfig) *AliyunOSSUploader {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	return &AliyunOSSUploader{
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.%s/", cfg.BucketName, endpoint),
	}
}

func (u *AliyunOSSUploader) Put(ctx context.Context, file *multipart.FileHeader) (MediaObject, error) {
	if err := ctx.Err(); err != nil {
		return MediaObject{}, err
	}
	src, err := file.Open()
	if err != nil {
		return MediaObject{}, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	// Generate unique filename: YYYYMMDD/uuid.ext
	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	if err := u.bucket.PutObject(key, src, oss.WithContext(ctx)); err != nil {
		return MediaObject{}, errors.Wrapf(err, "put object %s", key)
	}

	// bucket 为 public-read 或走 CDN，直接拼公网地址
	return MediaObject{URL: u.baseURL + key}, nil
}

func (u *AliyunOSSUploader) Delete(ctx context.Context, objectURL string) error {
	key, err := u.KeyFromURL(objectURL)
	if err != nil {
		return err
	}
	if err := u.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "delete object %s", key)
	}
	return nil
}

// KeyFromURL 从公网地址还原对象 key
func (u *AliyunOSSUploader) KeyFromURL(objectURL string) (string, error) {
	if !strings.HasPrefix(objectURL, u.baseURL) {
		return "", errors.Errorf("url %q does not belong to this bucket", objectURL)
	}
	parsed, err := url.Parse(objectURL)
	if err != nil {
		return "", errors.Wrap(err, "parse media url")
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", errors.Errorf("url %q has no object key", objectURL)
	}
	return key, nil
}
