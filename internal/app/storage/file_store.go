package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

// FileStore keeps the cart slot in a single JSON file on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) []model.CartLine {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Cart file unreadable, starting empty", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return []model.CartLine{}
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("Cart file corrupted, starting empty", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines
}

// Save writes the full list through a temp file and a rename, so a
// reader never observes a partial write.
func (s *FileStore) Save(ctx context.Context, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
