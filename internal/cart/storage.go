package cart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"StorefrontAPI/internal/model"
)

// Storage persists the whole item list after every mutation.
type Storage interface {
	Load() ([]model.CartItem, error)
	Save(items []model.CartItem) error
}

// FileStorage keeps the serialized cart in a single JSON file, the durable
// local-storage equivalent for a headless session.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load returns (nil, nil) for a missing or corrupt file: both mean an
// empty cart, never a fatal error.
func (f *FileStorage) Load() ([]model.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (f *FileStorage) Save(items []model.CartItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}
