package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrMinioConfig is returned when the endpoint or bucket is missing.
var ErrMinioConfig = errors.New("minio endpoint and bucket are required")

// minPartSize is the smallest multipart chunk S3 accepts. Uploads below it
// go out as a single PUT.
const minPartSize = 5 << 20

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
	UseSSL    bool
}

// MinioStore keeps uploaded files as objects under Prefix in one bucket.
// PutObject replaces objects atomically, so the last upload of a name wins.
type MinioStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioStore connects to the object store and creates the bucket when it
// does not exist yet.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, ErrMinioConfig
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		slog.InfoContext(ctx, "minio bucket created", "bucket", cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Save spools r to a local temp file first so the object size is known and a
// body rejected mid-stream never reaches the bucket.
func (s *MinioStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key, err := s.key(name)
	if err != nil {
		return "", err
	}

	spool, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	size, err := io.Copy(spool, r)
	if err != nil {
		return "", err
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, spool, size, minio.PutObjectOptions{
		ContentType: contentType,
		PartSize:    minPartSize,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return info.Bucket + "/" + info.Key, nil
}

// Open returns the stored object. A missing object is reported as
// pkgerror.ErrNotFound.
func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return nil, pkgerror.ErrNotFound
		}
		return nil, err
	}

	return obj, nil
}

func (s *MinioStore) key(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if s.prefix == "" {
		return name, nil
	}
	return path.Join(s.prefix, name), nil
}
