// Package storage keeps uploaded event images on the local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"greencity/config"
	"greencity/domain/shared"
	"greencity/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedContentTypes maps accepted upload types to file extensions.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// LocalImageStore writes images under dir and serves them from baseURL.
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(cfg config.StorageConfig) (*LocalImageStore, error) {
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalImageStore{
		dir:     cfg.UploadDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Save stores content under a random name and returns its public path.
func (s *LocalImageStore) Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	ext, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", shared.NewValidationError("event", "images",
			fmt.Sprintf("unsupported image type %q of %s", contentType, filename))
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.dir, name)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close image file: %w", err)
	}

	logger.FromContext(ctx).Debug("Image stored",
		zap.String("original_name", filename),
		zap.String("stored_name", name),
	)
	return s.baseURL + "/" + name, nil
}

// Delete removes an image by the path Save returned. Missing files are ignored.
func (s *LocalImageStore) Delete(ctx context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || !strings.HasPrefix(publicPath, s.baseURL+"/") {
		return fmt.Errorf("image %q is not served by this store", publicPath)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	logger.FromContext(ctx).Debug("Image removed", zap.String("stored_name", name))
	return nil
}
