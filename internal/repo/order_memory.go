package repo

import (
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
// It places orders against an InMemoryProductRepository, decrementing its
// stock on success.
type InMemoryOrderRepository struct {
	products *InMemoryProductRepository
	orders   []models.Order
	nextID   int
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository(products *InMemoryProductRepository) *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		products: products,
		orders:   []models.Order{},
		nextID:   1,
	}
}

// Place verifies every line against current stock before touching anything;
// the order is all-or-nothing.
func (r *InMemoryOrderRepository) Place(lines []OrderLine, method models.PaymentMethod) (models.Order, error) {
	total := 0.0
	verified := make([]models.Product, len(lines))
	for i, line := range lines {
		p, err := r.products.GetByID(line.ProductID)
		if err != nil {
			return models.Order{}, err
		}
		if p.Stock < line.Quantity {
			return models.Order{}, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
			}
		}
		verified[i] = p
		total += p.Price * float64(line.Quantity)
	}

	order := models.Order{
		ID:            r.nextID,
		Reference:     uuid.NewString(),
		Total:         total,
		PaymentMethod: string(method),
		Status:        "processing",
		CreatedAt:     time.Now().UTC(),
	}
	r.nextID++

	for i, line := range lines {
		p := verified[i]
		order.Items = append(order.Items, models.OrderItem{
			ID:        len(order.Items) + 1,
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     p.Price,
		})
		p.Stock -= line.Quantity
		if _, err := r.products.Update(p); err != nil {
			return models.Order{}, err
		}
	}

	r.orders = append(r.orders, order)
	return order, nil
}

// GetByID retrieves a placed order by its ID.
func (r *InMemoryOrderRepository) GetByID(id int) (models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// Clear removes all orders. Used by tests.
func (r *InMemoryOrderRepository) Clear() {
	r.orders = []models.Order{}
	r.nextID = 1
}
