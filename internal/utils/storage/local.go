package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// localStorage keeps uploads on disk under dir and serves them from baseURL.
// It backs development setups that run without an S3 bucket.
type localStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) AwsS3 {
	return &localStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *localStorage) UploadFile(_ context.Context, fileName string, content []byte, folder string, allowedTypes ...string) (string, error) {
	mtype, err := DetectType(content, allowedTypes...)
	if err != nil {
		return "", err
	}
	objectKey := strings.Trim(folder, "/") + "/" + fileName + mtype.Extension()
	path := filepath.Join(s.dir, filepath.FromSlash(objectKey))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *localStorage) DeleteFile(_ context.Context, objectKey string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(objectKey)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *localStorage) GetPublicLinkKey(objectKey string) string {
	return s.baseURL + "/" + objectKey
}

func (s *localStorage) GetObjectKeyFromLink(link string) string {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
