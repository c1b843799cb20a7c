package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusgigs/campusgigs-api/internal/config"
)

const (
	// Bucket names, mirroring the hosted buckets the web client used.
	BucketChatFiles = "chat-files"
	BucketAvatars   = "avatars"
	BucketPortfolio = "portfolio"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
	ErrInvalidPath  = errors.New("invalid storage path")
	ErrFileNotFound = errors.New("file not found")
)

// DiskStore keeps uploads on the local filesystem under root/{bucket}/{path}.
// Private buckets are only reachable through signed URLs; public buckets get
// stable URLs.
type DiskStore struct {
	root          string
	baseURL       string
	maxUploadSize int64
	publicBuckets map[string]bool
	signer        *Signer
}

func NewDiskStore(conf *config.StorageConfig, baseURL string) (*DiskStore, error) {
	if conf.SigningKey == "" {
		return nil, errors.New("storage signing key is required")
	}

	if err := os.MkdirAll(conf.Root, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	public := make(map[string]bool)
	for _, bucket := range strings.Split(conf.PublicBuckets, ",") {
		if bucket = strings.TrimSpace(bucket); bucket != "" {
			public[bucket] = true
		}
	}

	maxBytes := conf.MaxUploadMB
	if maxBytes <= 0 {
		maxBytes = 10
	}

	return &DiskStore{
		root:          conf.Root,
		baseURL:       strings.TrimRight(baseURL, "/"),
		maxUploadSize: maxBytes << 20,
		publicBuckets: public,
		signer:        NewSigner([]byte(conf.SigningKey)),
	}, nil
}

func (s *DiskStore) MaxUploadSize() int64 {
	return s.maxUploadSize
}

func (s *DiskStore) IsPublicBucket(bucket string) bool {
	return s.publicBuckets[bucket]
}

// Upload writes the object. It refuses anything over the size limit and any
// path that would escape the bucket directory.
func (s *DiskStore) Upload(ctx context.Context, bucket, path string, r io.Reader) error {
	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	// One extra byte so a stream exactly over the limit is detectable.
	written, err := io.Copy(f, io.LimitReader(r, s.maxUploadSize+1))
	if err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("io.Copy -> %w", err)
	}
	if written > s.maxUploadSize {
		os.Remove(fullPath)
		return ErrFileTooLarge
	}

	return nil
}

func (s *DiskStore) Remove(ctx context.Context, bucket, path string) error {
	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}

	if err = os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}

		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

// Open returns the on-disk location of an object for serving.
func (s *DiskStore) Open(bucket, path string) (string, error) {
	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}

	if _, err = os.Stat(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrFileNotFound
		}

		return "", fmt.Errorf("os.Stat -> %w", err)
	}

	return fullPath, nil
}

func (s *DiskStore) resolve(bucket, path string) (string, error) {
	if bucket == "" || path == "" || strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}

	fullPath := filepath.Join(s.root, bucket, filepath.FromSlash(path))
	bucketRoot := filepath.Join(s.root, bucket) + string(os.PathSeparator)
	if !strings.HasPrefix(fullPath, bucketRoot) {
		return "", ErrInvalidPath
	}

	return fullPath, nil
}
