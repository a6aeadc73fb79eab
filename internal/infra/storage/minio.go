package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/ayurconnect/internal/domain/share"
)

// Store keeps share summaries in a private bucket and hands out presigned links.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

var _ share.Store = (*Store)(nil)

type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, o Options) (*Store, error) {
	s, err := newStore(o)
	if err != nil {
		return nil, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s.bucketName, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", s.bucketName, err)
		}
	}
	return s, nil
}

func newStore(o Options) (*Store, error) {
	cli, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure: o.UseSSL,
		Region: o.Region,
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: cli, bucketName: o.Bucket, region: o.Region}, nil
}

// Put uploads text as a UTF-8 plain text object.
func (s *Store) Put(ctx context.Context, key, text string) error {
	_, err := s.client.PutObject(ctx, s.bucketName, key, strings.NewReader(text), int64(len(text)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Link bucket private, jadi selalu pakai presigned URL
func (s *Store) Link(ctx context.Context, key string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-type", "text/plain; charset=utf-8")
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// Check implements the readiness probe.
func (s *Store) Check(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s missing", s.bucketName)
	}
	return nil
}
