package cart

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// Storage persists the cart between sessions. An absent or unparseable
// cart is an empty cart, never an error the user sees.
type Storage interface {
	Load() ([]models.CartLineItem, error)
	Save(items []models.CartLineItem) error
	Clear() error
}

// FileStorage keeps the cart as a JSON array in a single file.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed cart storage at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted cart. A missing file or invalid JSON yields an
// empty cart.
func (s *FileStorage) Load() ([]models.CartLineItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.CartLineItem{}, nil
		}
		return nil, err
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []models.CartLineItem{}, nil
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items, nil
}

// Save writes the full cart, replacing whatever was there.
func (s *FileStorage) Save(items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Clear removes the persisted cart entirely.
func (s *FileStorage) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
