package uploader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"vidtube/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	puts    map[string][]byte
	deleted []string
	failDel error
}

func (b *fakeBucket) PutObject(key string, r io.Reader, _ ...oss.Option) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if b.puts == nil {
		b.puts = map[string][]byte{}
	}
	b.puts[key] = data
	return nil
}

func (b *fakeBucket) DeleteObject(key string, _ ...oss.Option) error {
	if b.failDel != nil {
		return b.failDel
	}
	b.deleted = append(b.deleted, key)
	return nil
}

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

var testOSS = config.OSSConfig{Endpoint: "https://oss-cn-hangzhou.aliyuncs.com", BucketName: "vidtube"}

func TestPutAndDelete(t *testing.T) {
	bucket := &fakeBucket{}
	u := newUploader(bucket, testOSS)

	obj, err := u.Put(context.Background(), fileHeader(t, "Clip.MP4", "frames"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.URL, "https://vidtube.oss-cn-hangzhou.aliyuncs.com/"))
	assert.True(t, strings.HasSuffix(obj.URL, ".mp4"))

	key, err := u.KeyFromURL(obj.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("frames"), bucket.puts[key])

	require.NoError(t, u.Delete(context.Background(), obj.URL))
	assert.Equal(t, []string{key}, bucket.deleted)
}

func TestDeleteFailures(t *testing.T) {
	t.Run("foreign url", func(t *testing.T) {
		u := newUploader(&fakeBucket{}, testOSS)
		assert.Error(t, u.Delete(context.Background(), "https://elsewhere.example.com/a.png"))
	})

	t.Run("bucket error", func(t *testing.T) {
		u := newUploader(&fakeBucket{failDel: errors.New("503")}, testOSS)
		err := u.Delete(context.Background(), "https://vidtube.oss-cn-hangzhou.aliyuncs.com/20240101/x.png")
		assert.ErrorContains(t, err, "503")
	})
}

func TestPutCancelled(t *testing.T) {
	u := newUploader(&fakeBucket{}, testOSS)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := u.Put(ctx, fileHeader(t, "a.png", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}
