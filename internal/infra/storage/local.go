package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// LocalStore writes objects under a directory served at PublicBaseURL.
type LocalStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

var _ shared.ObjectStorage = (*LocalStore)(nil)

func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "create storage dir %s", cfg.Dir), shared.ErrStorage)
	}
	return &LocalStore{
		dir:      cfg.Dir,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes: cfg.MaxPhotoBytes,
	}, nil
}

// Upload accepts data only when the declared type is allowed and the sniffed magic bytes
// agree with it.
func (s *LocalStore) Upload(ctx context.Context, data []byte, declaredContentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", errs.Wrapf(shared.ErrContentTooLarge, "%d bytes exceeds %d", len(data), s.maxBytes)
	}

	declared, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(declaredContentType)), ";")
	declared = strings.TrimSpace(declared)
	if !mimetype.EqualsAny(declared, allowedTypes...) {
		return "", errs.Wrapf(shared.ErrUnsupportedContent, "declared %q", declared)
	}
	sniffed := mimetype.Detect(data)
	if !sniffed.Is(declared) {
		return "", errs.Wrapf(shared.ErrUnsupportedContent, "declared %q but content is %q", declared, sniffed.String())
	}

	name := uuid.NewString() + sniffed.Extension()
	if err := writeAtomic(filepath.Join(s.dir, name), data); err != nil {
		return "", errs.Mark(err, shared.ErrStorage)
	}
	return s.baseURL + "/" + name, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return errs.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "write object")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "close object")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.Wrap(err, "rename object")
	}
	return nil
}
