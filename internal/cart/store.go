package cart

import (
	"context"
	"fmt"
	"log"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// ProductFetcher is the one stock query the cart needs: current product
// data by id. Implemented by client.Client.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id int) (*models.Product, error)
}

// Store owns the in-memory cart and its persisted mirror. All mutation goes
// through its methods; every mutating operation ends by persisting the full
// cart. Operations do not return errors: failures are converted into a
// user-visible notice and a safe fallback, matching the storefront's
// behavior of never surfacing a cart failure as anything fatal.
//
// Store is not safe for concurrent use. The storefront drives it from a
// single interactive loop.
type Store struct {
	api     ProductFetcher
	storage Storage
	notify  Notifier
	items   []models.CartLineItem
}

// NewStore creates an empty cart store. Call Load to hydrate it from
// persisted storage.
func NewStore(api ProductFetcher, storage Storage, notify Notifier) *Store {
	return &Store{
		api:     api,
		storage: storage,
		notify:  notify,
		items:   []models.CartLineItem{},
	}
}

// Load hydrates the cart from persisted storage and immediately reconciles
// it against current stock. The cart is not ready until Load returns.
func (s *Store) Load(ctx context.Context) {
	items, err := s.storage.Load()
	if err != nil {
		log.Printf("could not load persisted cart: %v", err)
		items = []models.CartLineItem{}
	}
	s.items = items
	if len(s.items) > 0 {
		s.Reconcile(ctx)
	}
}

// Add puts one unit of the product in the cart, subject to current stock.
// A product that cannot be fetched is treated as out of stock.
func (s *Store) Add(ctx context.Context, productID int) {
	product, err := s.api.FetchProduct(ctx, productID)
	if err != nil || !product.InStock() {
		s.notify.Notify("This item is out of stock")
		return
	}

	if existing := s.find(productID); existing != nil {
		if existing.Quantity >= product.Stock {
			s.notify.Notify(fmt.Sprintf("Only %d available (already in cart)", product.Stock))
			return
		}
		existing.Quantity++
	} else {
		s.items = append(s.items, models.CartLineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price, // snapshot; never refreshed on later adds
			Quantity: 1,
			Image:    product.Image,
			MaxStock: product.Stock,
		})
	}

	s.persist()
	s.notify.Notify(fmt.Sprintf("%s added to cart", product.Name))
}

// SetQuantity sets the line item's quantity, clamped into [0, stock].
// A clamped value of zero removes the item, as does a product that no
// longer exists.
func (s *Store) SetQuantity(ctx context.Context, productID, quantity int) {
	product, err := s.api.FetchProduct(ctx, productID)
	if err != nil {
		s.notify.Notify("Product not available")
		s.Remove(productID)
		return
	}

	quantity = max(0, min(quantity, product.Stock))

	item := s.find(productID)
	if item == nil {
		return
	}
	if quantity == 0 {
		s.Remove(productID)
		return
	}

	item.Quantity = quantity
	item.MaxStock = product.Stock
	s.persist()
}

// Remove deletes the matching line item if present; no-op otherwise.
func (s *Store) Remove(productID int) {
	for i, item := range s.items {
		if item.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Reconcile re-validates every line item against authoritative stock:
// unavailable products are dropped, quantities are clamped to current stock
// and MaxStock is refreshed. A line left without at least one unit is
// dropped; every surviving item has quantity >= 1. The rebuilt list replaces the cart in one step
// and is then persisted. Stock queries run sequentially over the snapshot
// taken at entry; reconciliation always finishes what it started.
func (s *Store) Reconcile(ctx context.Context) {
	verified := []models.CartLineItem{}

	for _, item := range s.items {
		product, err := s.api.FetchProduct(ctx, item.ID)
		if err != nil || !product.InStock() {
			continue
		}
		item.Quantity = min(item.Quantity, product.Stock)
		if item.Quantity <= 0 {
			continue
		}
		item.MaxStock = product.Stock
		verified = append(verified, item)
	}

	s.items = verified
	s.persist()
}

// Items returns a copy of the current line items, in insertion order.
func (s *Store) Items() []models.CartLineItem {
	items := make([]models.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of price times quantity over all line items. Prices are
// add-time snapshots, so the total can drift from live catalog prices.
func (s *Store) Total() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the total number of units in the cart.
func (s *Store) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Len is the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) find(productID int) *models.CartLineItem {
	for i := range s.items {
		if s.items[i].ID == productID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Store) persist() {
	if err := s.storage.Save(s.items); err != nil {
		log.Printf("could not persist cart: %v", err)
		s.notify.Notify("Failed to save cart")
	}
}
