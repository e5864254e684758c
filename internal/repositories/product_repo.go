package repositories

import (
	"fmt"

	"equaline/internal/models"
)

// ProductRepository defines the interface for catalog access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
}

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = fmt.Errorf("product not found")

// CatalogRepository is an immutable, ordered, in-memory ProductRepository.
type CatalogRepository struct {
	products []models.Product
	byID     map[int]int
}

// NewCatalogRepository creates a catalog from the seed list. Products keep
// the seed order; a duplicate id is rejected.
func NewCatalogRepository(products []models.Product) (*CatalogRepository, error) {
	r := &CatalogRepository{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if _, exists := r.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product ID %d in catalog", p.ID)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

// GetAll returns a copy of every product in catalog order.
func (r *CatalogRepository) GetAll() ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a product by its ID.
func (r *CatalogRepository) GetByID(id int) (*models.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	product := r.products[i]
	return &product, nil
}
