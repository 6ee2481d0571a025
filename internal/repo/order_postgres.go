package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Place runs the whole order inside one transaction. Product rows are locked
// with FOR UPDATE so the stock check and the decrement see the same value.
func (r *PostgresOrderRepository) Place(lines []OrderLine, method models.PaymentMethod) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0.0
	prices := make([]float64, len(lines))
	for i, line := range lines {
		var name string
		var price float64
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT name, price, stock FROM products WHERE id = $1 FOR UPDATE`,
			line.ProductID).Scan(&name, &price, &stock)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrProductNotFound
		}
		if err != nil {
			return models.Order{}, err
		}
		if stock < line.Quantity {
			return models.Order{}, &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: name,
				Available:   stock,
			}
		}
		prices[i] = price
		total += price * float64(line.Quantity)
	}

	order := models.Order{
		Reference:     uuid.NewString(),
		Total:         total,
		PaymentMethod: string(method),
		Status:        "processing",
		CreatedAt:     time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (reference, total, payment_method, status, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		order.Reference, order.Total, order.PaymentMethod, order.Status, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		return models.Order{}, err
	}

	for i, line := range lines {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     prices[i],
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			return models.Order{}, err
		}
		order.Items = append(order.Items, item)

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2`,
			line.Quantity, line.ProductID); err != nil {
			return models.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

func (r *PostgresOrderRepository) GetByID(id int) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var o models.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reference, total, payment_method, status, created_at FROM orders WHERE id = $1`,
		id).Scan(&o.ID, &o.Reference, &o.Total, &o.PaymentMethod, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`,
		id)
	if err != nil {
		return models.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return models.Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}
