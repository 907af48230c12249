package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ImageStore saves uploaded product images to Dir and returns the public
// URL under URLPrefix.
type ImageStore struct {
	Dir       string
	URLPrefix string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir, URLPrefix: "/images/products"}
}

func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w %q", ErrUnsupportedType, ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path.Join(s.URLPrefix, name), nil
}

// Exists reports whether url points at a file this store holds.
func (s *ImageStore) Exists(url string) bool {
	if !strings.HasPrefix(url, s.URLPrefix+"/") {
		return false
	}
	name := path.Base(url)
	st, err := os.Stat(filepath.Join(s.Dir, name))
	return err == nil && !st.IsDir()
}

// Remove deletes a file previously returned by Save. Unknown urls are ignored.
func (s *ImageStore) Remove(url string) error {
	if !s.Exists(url) {
		return nil
	}
	return os.Remove(filepath.Join(s.Dir, path.Base(url)))
}
