package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

func TestFileStorageMissingFileIsEmptyCart(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))

	items, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %v", items)
	}
}

func TestFileStorageInvalidJSONIsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStorage(path)

	items, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %v", items)
	}
}

func TestFileStorageSaveThenLoad(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))
	saved := []models.CartLineItem{
		{ID: 1, Name: "Bottle", Price: 999, Quantity: 2, MaxStock: 10},
	}

	if err := s.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != saved[0] {
		t.Errorf("expected %v, got %v", saved, loaded)
	}
}

func TestFileStorageClear(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))
	if err := s.Save([]models.CartLineItem{{ID: 1, Quantity: 1}}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// clearing an already-clear storage is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	items, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart after clear, got %v", items)
	}
}
