package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/rogerio-castellano/greenmarket/internal/models"
	"github.com/rogerio-castellano/greenmarket/internal/repo"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	price DOUBLE PRECISION NOT NULL,
	category TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	stock INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
	id SERIAL PRIMARY KEY,
	reference TEXT NOT NULL UNIQUE,
	total DOUBLE PRECISION NOT NULL,
	payment_method TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
	id SERIAL PRIMARY KEY,
	order_id INTEGER NOT NULL REFERENCES orders(id),
	product_id INTEGER NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL,
	price DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'admin',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// SampleProducts is the catalog seeded into an empty database.
var SampleProducts = []models.Product{
	{
		Name:        "Bamboo Water Bottle",
		Price:       999,
		Category:    "Kitchen",
		Image:       "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400",
		Description: "Eco-friendly bamboo water bottle with vacuum insulation.",
		Stock:       10,
	},
	{
		Name:        "Bamboo Cutlery Set",
		Price:       2000,
		Category:    "Kitchen",
		Image:       "https://images.unsplash.com/photo-1584269600464-37b1b58a9fe7?w=400",
		Description: "Portable bamboo cutlery set with carrying case.",
		Stock:       15,
	},
	{
		Name:        "Organic Cotton Tote",
		Price:       349,
		Category:    "Bags",
		Image:       "https://example.com/tote.jpg",
		Description: "100% organic cotton shopping tote.",
		Stock:       20,
	},
}

// Initialize creates the schema and seeds sample products when the catalog
// is empty.
func Initialize(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding sample products...")
	products := repo.NewPostgresProductRepository(db)
	for _, p := range SampleProducts {
		if _, err := products.Create(p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return nil
}
