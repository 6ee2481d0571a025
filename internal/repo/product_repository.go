package repo

import "github.com/rogerio-castellano/greenmarket/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	// AdjustStock applies a signed delta to a product's stock. The result
	// may never go below zero.
	AdjustStock(id, delta int) (models.Product, error)
}
