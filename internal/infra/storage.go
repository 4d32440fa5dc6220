package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage persists uploaded images (product photos, center logos) on the
// local filesystem and hands back the relative URL the SPA serves them from.
type FileStorage struct {
	baseDir string
}

func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{baseDir: baseDir}
}

// Save writes data into subdir under the storage root with a random file name
// and returns the relative URL ("/uploads/{subdir}/{name}{ext}").
func (s *FileStorage) Save(subdir, origName string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(origName)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, nil
}

// Dir returns the storage root, used to mount the static file route.
func (s *FileStorage) Dir() string { return s.baseDir }
