package storefront_test_suite

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/greenmarket/internal/cart"
	"github.com/rogerio-castellano/greenmarket/internal/catalog"
	"github.com/rogerio-castellano/greenmarket/internal/checkout"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// TestShoppingFlow drives the full storefront path against a live router:
// browse the catalog, build a cart, check out, confirm stock moved.
func TestShoppingFlow(t *testing.T) {
	t.Cleanup(clearAll)
	bottle := seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)
	tote := seedProduct("Organic Cotton Tote", 299, "Accessories", 5)
	ctx := context.Background()

	store, api, storage, notices := newStorefront(t)

	products := catalog.Load(ctx, api)
	if len(products) != 2 {
		t.Fatalf("expected 2 products in the catalog, got %d", len(products))
	}

	store.Load(ctx)
	store.Add(ctx, bottle.ID)
	store.Add(ctx, bottle.ID)
	store.Add(ctx, tote.ID)
	store.SetQuantity(ctx, tote.ID, 3)

	if store.Count() != 5 {
		t.Fatalf("expected 5 units in the cart, got %d", store.Count())
	}
	if store.Total() != 2*999+3*299 {
		t.Errorf("expected cart total %v, got %v", 2*999+3*299, store.Total())
	}

	orch := checkout.New(api, storage, notices, 5)
	summary, err := orch.Begin(ctx)
	if err != nil {
		t.Fatalf("checkout verification failed: %v", err)
	}
	if summary.Total != 2*999+3*299+5 {
		t.Errorf("expected order total %v, got %v", 2*999+3*299+5, summary.Total)
	}

	confirmation, err := orch.PlaceOrder(ctx, models.CardInfo{
		CardNumber: "4111111111111111",
		Expiry:     "12/27",
		CVV:        "123",
		CardName:   "Jo Shopper",
	})
	if err != nil {
		t.Fatalf("order submission failed: %v", err)
	}
	if confirmation.Reference == "" {
		t.Error("expected a non-empty order reference")
	}

	got, _ := productRepo.GetByID(bottle.ID)
	if got.Stock != 8 {
		t.Errorf("expected bottle stock 8 after checkout, got %d", got.Stock)
	}
	got, _ = productRepo.GetByID(tote.ID)
	if got.Stock != 2 {
		t.Errorf("expected tote stock 2 after checkout, got %d", got.Stock)
	}

	persisted, err := storage.Load()
	if err != nil {
		t.Fatalf("error reading persisted cart: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("expected the persisted cart cleared after checkout, got %v", persisted)
	}
}

// TestCheckoutAfterStockDrop covers the race the verification step exists
// for: stock changes between adding to the cart and checking out.
func TestCheckoutAfterStockDrop(t *testing.T) {
	t.Cleanup(clearAll)
	bottle := seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)
	ctx := context.Background()

	store, api, storage, notices := newStorefront(t)
	store.Load(ctx)
	store.Add(ctx, bottle.ID)
	store.SetQuantity(ctx, bottle.ID, 4)

	// another shopper takes most of the stock
	if _, err := productRepo.AdjustStock(bottle.ID, -9); err != nil {
		t.Fatalf("error adjusting stock: %v", err)
	}

	orch := checkout.New(api, storage, notices, 5)
	if _, err := orch.Begin(ctx); !errors.Is(err, checkout.ErrCartAdjusted) {
		t.Fatalf("expected ErrCartAdjusted, got %v", err)
	}

	persisted, err := storage.Load()
	if err != nil {
		t.Fatalf("error reading persisted cart: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Quantity != 1 {
		t.Fatalf("expected the corrected cart persisted with quantity 1, got %v", persisted)
	}

	// after re-review the adjusted cart goes through
	summary, err := orch.Begin(ctx)
	if err != nil {
		t.Fatalf("second verification failed: %v", err)
	}
	if summary.Total != 999+5 {
		t.Errorf("expected adjusted total %v, got %v", 999+5, summary.Total)
	}
	if _, err := orch.PlaceOrder(ctx, models.CODInfo{Address: "12 Fern Lane", Phone: "5550100"}); err != nil {
		t.Fatalf("order submission failed: %v", err)
	}
	got, _ := productRepo.GetByID(bottle.ID)
	if got.Stock != 0 {
		t.Errorf("expected stock 0 after checkout, got %d", got.Stock)
	}
}

// TestReloadDropsRemovedProducts covers cart hydration against a catalog
// that changed while the cart sat in storage.
func TestReloadDropsRemovedProducts(t *testing.T) {
	t.Cleanup(clearAll)
	bottle := seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)
	tote := seedProduct("Organic Cotton Tote", 299, "Accessories", 5)
	ctx := context.Background()

	store, api, storage, notices := newStorefront(t)
	store.Load(ctx)
	store.Add(ctx, bottle.ID)
	store.Add(ctx, tote.ID)

	if err := productRepo.Delete(tote.ID); err != nil {
		t.Fatalf("error deleting product: %v", err)
	}

	// a fresh session over the same persisted cart
	reloaded := cart.NewStore(api, storage, notices)
	reloaded.Load(ctx)

	items := reloaded.Items()
	if len(items) != 1 || items[0].ID != bottle.ID {
		t.Fatalf("expected only the bottle to survive reload, got %v", items)
	}
}
