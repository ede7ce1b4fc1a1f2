package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/inspectly/qassist/internal/domain"
)

// Config holds Supabase Storage connection configuration.
type Config struct {
	URL    string
	APIKey string
	Bucket string
}

// Store implements domain.BlobStore on top of a Supabase Storage bucket.
type Store struct {
	client *storage_go.Client
	bucket string
}

// New creates a new Supabase-backed blob store.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("supabase bucket is required")
	}

	return &Store{
		client: storage_go.NewClient(cfg.URL, cfg.APIKey, nil),
		bucket: cfg.Bucket,
	}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.UploadFile(s.bucket, name, bytes.NewReader(data))
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("blob %q: %w", name, domain.ErrBlobExists)
		}
		return fmt.Errorf("uploading blob %q: %w", name, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("blob %q: %w", name, domain.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("downloading blob %q: %w", name, err)
	}
	return data, nil
}

// Delete is idempotent: an already-absent object is treated as success.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{name})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting blob %q: %w", name, err)
	}
	return nil
}

// The storage API reports conflicts and misses as stringly-typed statuses.
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "already exists") || strings.Contains(msg, "409")
}

func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not_found") || strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
