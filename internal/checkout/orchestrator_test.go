package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/greenmarket/internal/client"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

type stubAPI struct {
	verify        *client.VerifyResult
	verifyErr     error
	confirmation  *client.OrderConfirmation
	checkoutErr   error
	checkoutCalls int
	lastLines     []client.OrderLine
}

func (s *stubAPI) VerifyCart(_ context.Context, _ []models.CartLineItem) (*client.VerifyResult, error) {
	return s.verify, s.verifyErr
}

func (s *stubAPI) Checkout(_ context.Context, items []client.OrderLine, _ models.PaymentInfo) (*client.OrderConfirmation, error) {
	s.checkoutCalls++
	s.lastLines = items
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return s.confirmation, nil
}

type stubStorage struct {
	items  []models.CartLineItem
	saved  []models.CartLineItem
	clears int
}

func (s *stubStorage) Load() ([]models.CartLineItem, error) { return s.items, nil }
func (s *stubStorage) Save(items []models.CartLineItem) error {
	s.saved = items
	s.items = items
	return nil
}
func (s *stubStorage) Clear() error {
	s.clears++
	s.items = nil
	return nil
}

type noticeRecorder struct {
	notices []string
}

func (r *noticeRecorder) Notify(message string) { r.notices = append(r.notices, message) }

var twoItems = []models.CartLineItem{
	{ID: 1, Name: "Bottle", Price: 999, Quantity: 2, MaxStock: 10},
	{ID: 3, Name: "Tote", Price: 349, Quantity: 1, MaxStock: 20},
}

func TestBeginEmptyCart(t *testing.T) {
	o := New(&stubAPI{}, &stubStorage{}, &noticeRecorder{}, 5)

	_, err := o.Begin(context.Background())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestBeginValidCartSummary(t *testing.T) {
	api := &stubAPI{verify: &client.VerifyResult{Valid: true, Cart: twoItems}}
	o := New(api, &stubStorage{items: twoItems}, &noticeRecorder{}, 5)

	summary, err := o.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Subtotal != 2347 {
		t.Errorf("expected subtotal 2347, got %v", summary.Subtotal)
	}
	if summary.Shipping != 5 {
		t.Errorf("expected shipping 5, got %v", summary.Shipping)
	}
	if summary.Total != 2352 {
		t.Errorf("expected total 2352, got %v", summary.Total)
	}
}

func TestBeginAdjustedCartPersistsCorrection(t *testing.T) {
	corrected := []models.CartLineItem{
		{ID: 1, Name: "Bottle", Price: 999, Quantity: 1, MaxStock: 1},
	}
	api := &stubAPI{verify: &client.VerifyResult{Valid: false, Cart: corrected}}
	storage := &stubStorage{items: twoItems}
	notices := &noticeRecorder{}
	o := New(api, storage, notices, 5)

	_, err := o.Begin(context.Background())
	if !errors.Is(err, ErrCartAdjusted) {
		t.Fatalf("expected ErrCartAdjusted, got %v", err)
	}
	if len(storage.saved) != 1 || storage.saved[0] != corrected[0] {
		t.Errorf("expected corrected cart persisted verbatim, got %v", storage.saved)
	}
	if api.checkoutCalls != 0 {
		t.Errorf("no order may be submitted after an adjustment, got %d calls", api.checkoutCalls)
	}
	if len(notices.notices) != 1 {
		t.Errorf("expected one blocking notice, got %v", notices.notices)
	}
}

func TestBeginVerifyFailureLeavesCartAlone(t *testing.T) {
	api := &stubAPI{verifyErr: errors.New("connection refused")}
	storage := &stubStorage{items: twoItems}
	o := New(api, storage, &noticeRecorder{}, 5)

	_, err := o.Begin(context.Background())
	if err == nil || errors.Is(err, ErrCartAdjusted) || errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected a plain verification error, got %v", err)
	}
	if storage.saved != nil {
		t.Errorf("verification failure must not rewrite the cart, saved %v", storage.saved)
	}
}

func TestPlaceOrderBeforeBegin(t *testing.T) {
	o := New(&stubAPI{}, &stubStorage{}, &noticeRecorder{}, 5)

	_, err := o.PlaceOrder(context.Background(), models.CODInfo{Address: "a", Phone: "1"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrderNoPaymentMethod(t *testing.T) {
	api := &stubAPI{verify: &client.VerifyResult{Valid: true, Cart: twoItems}}
	o := New(api, &stubStorage{items: twoItems}, &noticeRecorder{}, 5)
	if _, err := o.Begin(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := o.PlaceOrder(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for a missing payment method")
	}
	if api.checkoutCalls != 0 {
		t.Errorf("expected no submission, got %d calls", api.checkoutCalls)
	}
}

func TestPlaceOrderIncompletePaymentDetails(t *testing.T) {
	api := &stubAPI{verify: &client.VerifyResult{Valid: true, Cart: twoItems}}
	o := New(api, &stubStorage{items: twoItems}, &noticeRecorder{}, 5)
	if _, err := o.Begin(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := o.PlaceOrder(context.Background(), models.UPIInfo{UPIName: "User"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if api.checkoutCalls != 0 {
		t.Errorf("expected no submission, got %d calls", api.checkoutCalls)
	}
}

func TestPlaceOrderSuccessClearsCart(t *testing.T) {
	api := &stubAPI{
		verify:       &client.VerifyResult{Valid: true, Cart: twoItems},
		confirmation: &client.OrderConfirmation{OrderID: 7, Total: 2352},
	}
	storage := &stubStorage{items: twoItems}
	o := New(api, storage, &noticeRecorder{}, 5)
	if _, err := o.Begin(context.Background()); err != nil {
		t.Fatal(err)
	}

	confirmation, err := o.PlaceOrder(context.Background(), models.CODInfo{Address: "12 Green Lane", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation.OrderID != 7 {
		t.Errorf("expected order 7, got %d", confirmation.OrderID)
	}
	if storage.clears != 1 {
		t.Errorf("expected persisted cart cleared once, got %d", storage.clears)
	}
	if len(api.lastLines) != 2 || api.lastLines[0] != (client.OrderLine{ID: 1, Quantity: 2}) {
		t.Errorf("unexpected submitted lines: %v", api.lastLines)
	}
	if o.Summary() != nil {
		t.Error("expected no summary after a placed order")
	}
}

func TestPlaceOrderServerFailureLeavesStateUntouched(t *testing.T) {
	api := &stubAPI{
		verify:      &client.VerifyResult{Valid: true, Cart: twoItems},
		checkoutErr: &client.APIError{StatusCode: 400, Message: "Not enough stock for Bottle (available: 1)"},
	}
	storage := &stubStorage{items: twoItems}
	o := New(api, storage, &noticeRecorder{}, 5)
	if _, err := o.Begin(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := o.PlaceOrder(context.Background(), models.CODInfo{Address: "12 Green Lane", Phone: "9876543210"})
	if err == nil {
		t.Fatal("expected the server error to surface")
	}
	if err.Error() != "Not enough stock for Bottle (available: 1)" {
		t.Errorf("expected the server message verbatim, got %q", err)
	}
	if storage.clears != 0 {
		t.Errorf("failed submission must not clear the cart, got %d clears", storage.clears)
	}
	if o.Summary() == nil {
		t.Error("expected the verified summary to survive for a retry")
	}

	// the user can retry after a failure
	api.checkoutErr = nil
	api.confirmation = &client.OrderConfirmation{OrderID: 8}
	if _, err := o.PlaceOrder(context.Background(), models.CODInfo{Address: "12 Green Lane", Phone: "9876543210"}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}
