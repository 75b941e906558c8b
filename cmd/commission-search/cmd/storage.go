package cmd

import (
	"context"
	"fmt"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/config"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/store"
)

// newStore builds the corpus store selected by the configuration.
func newStore(ctx context.Context, cfg config.Storage) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Path)
	case "s3":
		s3, err := store.NewS3Store(store.S3Config{
			Endpoint:        cfg.Endpoint,
			Bucket:          cfg.Bucket,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			UseSSL:          cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket: %w", err)
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
