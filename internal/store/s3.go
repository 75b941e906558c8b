package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// S3Config holds S3/MinIO client configuration.
type S3Config struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// S3Store persists harvest output in an S3-compatible bucket. The
// corpus snapshot lives at the "corpus.json" object key.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store creates an S3Store.
func NewS3Store(config S3Config) (*S3Store, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &S3Store{client: client, bucket: config.Bucket}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// PutCorpus replaces the corpus snapshot object.
func (s *S3Store) PutCorpus(ctx context.Context, docs []models.Document) error {
	if docs == nil {
		docs = []models.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	return s.putObject(ctx, "corpus.json", data, "application/json")
}

// GetCorpus reads the corpus snapshot object.
func (s *S3Store) GetCorpus(ctx context.Context) ([]models.Document, error) {
	object, err := s.client.GetObject(ctx, s.bucket, "corpus.json", minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal corpus: %w", err)
	}
	return docs, nil
}

// PutPage writes one archived page under <prefix>/pages/.
func (s *S3Store) PutPage(ctx context.Context, prefix, filename, content string) error {
	objectName := path.Join(prefix, "pages", filename)
	reader := strings.NewReader(content)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(content)),
		minio.PutObjectOptions{ContentType: "text/markdown"})
	if err != nil {
		return fmt.Errorf("put page: %w", err)
	}
	return nil
}

// PutManifest writes the run manifest under <prefix>/.
func (s *S3Store) PutManifest(ctx context.Context, prefix string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return s.putObject(ctx, path.Join(prefix, "manifest.json"), data, "application/json")
}

func (s *S3Store) putObject(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
