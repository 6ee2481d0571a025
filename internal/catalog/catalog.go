// Package catalog loads and filters the product catalog for the storefront
// grid. Catalog failures are never surfaced as errors: the grid simply
// renders empty.
package catalog

import (
	"context"
	"log"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "All"

// CatalogFetcher retrieves the full product list. Implemented by
// client.Client.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]models.Product, error)
}

// Load fetches the catalog, converting any failure into an empty list.
// The failure is logged, not shown to the user.
func Load(ctx context.Context, api CatalogFetcher) []models.Product {
	products, err := api.FetchCatalog(ctx)
	if err != nil {
		log.Printf("could not fetch catalog: %v", err)
		return []models.Product{}
	}
	return products
}

// Filter returns the products matching the category and price ceiling,
// preserving catalog order. Category match is exact, with CategoryAll
// matching everything; price matches when price <= maxPrice.
func Filter(products []models.Product, category string, maxPrice float64) []models.Product {
	filtered := []models.Product{}
	for _, p := range products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if p.Price > maxPrice {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Categories lists the distinct categories present in the catalog, with
// CategoryAll first, preserving first-seen order.
func Categories(products []models.Product) []string {
	categories := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
