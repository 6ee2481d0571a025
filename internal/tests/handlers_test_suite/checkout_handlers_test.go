package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/greenmarket/internal/http/handlers"
)

func TestCheckoutSuccess(t *testing.T) {
	t.Cleanup(clearAll)
	seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)
	seedProduct("Organic Cotton Tote", 299, "Accessories", 5)

	w := doRequest(http.MethodPost, "/api/checkout", handler.CheckoutRequest{
		Items: []handler.CheckoutItem{
			{ID: 1, Quantity: 2},
			{ID: 2, Quantity: 1},
		},
		PaymentMethod: "card",
	}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.CheckoutResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.OrderID == 0 || resp.Reference == "" || resp.Timestamp == "" {
		t.Errorf("incomplete order confirmation: %+v", resp)
	}
	if resp.Total != 2*999+299 {
		t.Errorf("expected total %v, got %v", 2*999+299, resp.Total)
	}

	bottle, _ := productRepo.GetByID(1)
	tote, _ := productRepo.GetByID(2)
	if bottle.Stock != 8 || tote.Stock != 4 {
		t.Errorf("expected stock decremented to 8 and 4, got %d and %d", bottle.Stock, tote.Stock)
	}

	order, err := orderRepo.GetByID(resp.OrderID)
	if err != nil {
		t.Fatalf("order not found after checkout: %v", err)
	}
	if order.PaymentMethod != "card" || order.Status != "processing" {
		t.Errorf("unexpected order record: %+v", order)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	t.Cleanup(clearAll)
	seedProduct("Bamboo Water Bottle", 999, "Kitchen", 1)

	w := doRequest(http.MethodPost, "/api/checkout", handler.CheckoutRequest{
		Items:         []handler.CheckoutItem{{ID: 1, Quantity: 3}},
		PaymentMethod: "upi",
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp handler.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "Not enough stock for Bamboo Water Bottle (available: 1)" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	p, _ := productRepo.GetByID(1)
	if p.Stock != 1 {
		t.Errorf("stock changed on a failed checkout: %d", p.Stock)
	}
}

func TestCheckoutFailureIsAllOrNothing(t *testing.T) {
	t.Cleanup(clearAll)
	seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)
	seedProduct("Organic Cotton Tote", 299, "Accessories", 0)

	w := doRequest(http.MethodPost, "/api/checkout", handler.CheckoutRequest{
		Items: []handler.CheckoutItem{
			{ID: 1, Quantity: 1},
			{ID: 2, Quantity: 1},
		},
		PaymentMethod: "cod",
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	bottle, _ := productRepo.GetByID(1)
	if bottle.Stock != 10 {
		t.Errorf("first line was committed despite a later failure, stock %d", bottle.Stock)
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	t.Cleanup(clearAll)

	w := doRequest(http.MethodPost, "/api/checkout", handler.CheckoutRequest{
		Items:         []handler.CheckoutItem{{ID: 99, Quantity: 1}},
		PaymentMethod: "card",
	}, "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCheckoutInvalidRequests(t *testing.T) {
	t.Cleanup(clearAll)
	seedProduct("Bamboo Water Bottle", 999, "Kitchen", 10)

	tests := []struct {
		name string
		req  handler.CheckoutRequest
	}{
		{
			name: "empty items",
			req:  handler.CheckoutRequest{PaymentMethod: "card"},
		},
		{
			name: "unsupported payment method",
			req: handler.CheckoutRequest{
				Items:         []handler.CheckoutItem{{ID: 1, Quantity: 1}},
				PaymentMethod: "cheque",
			},
		},
		{
			name: "zero quantity",
			req: handler.CheckoutRequest{
				Items:         []handler.CheckoutItem{{ID: 1, Quantity: 0}},
				PaymentMethod: "card",
			},
		},
		{
			name: "negative quantity",
			req: handler.CheckoutRequest{
				Items:         []handler.CheckoutItem{{ID: 1, Quantity: -2}},
				PaymentMethod: "card",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(http.MethodPost, "/api/checkout", tt.req, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}
