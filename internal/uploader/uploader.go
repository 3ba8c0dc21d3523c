package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxUploadSize caps the accepted image part.
const MaxUploadSize = int64(5 * 1024 * 1024)

var (
	ErrUploadFailed = errors.New("image upload failed")
	ErrEmptyResult  = errors.New("upload returned no accessible URL")
)

// Uploader accepts raw image bytes plus a destination folder label and
// returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (string, error)
}

type Config struct {
	Endpoint string
	Bucket   string
}

type OSSUploader struct {
	bucket   *oss.Bucket
	name     string
	endpoint string
	log      *zerolog.Logger
}

// NewOSS builds an uploader against a hosted object store. Credentials come
// from OSS_ACCESS_KEY_ID / OSS_ACCESS_KEY_SECRET.
func NewOSS(cfg Config, log *zerolog.Logger) (*OSSUploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage endpoint and bucket are required")
	}

	client, err := oss.New(
		cfg.Endpoint,
		strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID")),
		strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage bucket: %w", err)
	}

	return &OSSUploader{
		bucket:   bucket,
		name:     cfg.Bucket,
		endpoint: hostOf(cfg.Endpoint),
		log:      log,
	}, nil
}

func (u *OSSUploader) Upload(ctx context.Context, data []byte, filename, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUploadFailed)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := folder + "/" + uuid.NewString() + ext

	contentType := http.DetectContentType(head(data))
	if err := u.bucket.PutObject(key, bytes.NewReader(data), oss.ContentType(contentType)); err != nil {
		u.log.Error().Err(err).Str("key", key).Msg("failed to put object to storage")
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	url := u.publicURL(key)
	if url == "" {
		// the store accepted the object but we cannot address it; treat as
		// an upstream failure rather than letting an empty image through
		return "", ErrEmptyResult
	}

	u.log.Info().Str("key", key).Str("url", url).Msg("image uploaded")
	return url, nil
}

func (u *OSSUploader) publicURL(key string) string {
	if u.name == "" || u.endpoint == "" || key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.%s/%s", u.name, u.endpoint, key)
}

func hostOf(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimSuffix(endpoint, "/")
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
