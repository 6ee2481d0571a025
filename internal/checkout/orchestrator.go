// Package checkout drives the one-shot checkout pipeline: load the
// persisted cart, re-verify it server-side, present the order summary, then
// submit the order with the selected payment details.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/greenmarket/internal/cart"
	"github.com/rogerio-castellano/greenmarket/internal/client"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// ErrEmptyCart means there is no persisted cart to check out. The caller
// sends the user back to the product grid; it is a precondition failure,
// not an error state.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCartAdjusted means server verification corrected the cart. The
// corrected cart has already been persisted; the user must re-review before
// checkout can proceed. No order was submitted.
var ErrCartAdjusted = errors.New("cart adjusted to available stock")

// ErrSubmitInFlight means an order submission is already running.
var ErrSubmitInFlight = errors.New("order submission already in progress")

// VerifyClient is the server-side verification and order submission surface
// the orchestrator needs. Implemented by client.Client.
type VerifyClient interface {
	VerifyCart(ctx context.Context, items []models.CartLineItem) (*client.VerifyResult, error)
	Checkout(ctx context.Context, items []client.OrderLine, info models.PaymentInfo) (*client.OrderConfirmation, error)
}

// Summary is the rendered order summary: verified items with a subtotal,
// the flat shipping fee, and the total.
type Summary struct {
	Items    []models.CartLineItem
	Subtotal float64
	Shipping float64
	Total    float64
}

// Orchestrator runs the checkout pipeline for one persisted cart.
type Orchestrator struct {
	api        VerifyClient
	storage    cart.Storage
	notify     cart.Notifier
	shipping   float64
	verified   []models.CartLineItem
	submitting bool
}

// New creates a checkout orchestrator. shipping is the flat fee added to
// every order.
func New(api VerifyClient, storage cart.Storage, notify cart.Notifier, shipping float64) *Orchestrator {
	return &Orchestrator{
		api:      api,
		storage:  storage,
		notify:   notify,
		shipping: shipping,
	}
}

// Begin loads the persisted cart and verifies it with the server.
//
// An absent or empty cart returns ErrEmptyCart. When the server reports the
// cart invalid, the corrected cart replaces the persisted one, a blocking
// notice is raised, and ErrCartAdjusted is returned: the user re-reviews
// from the top, with no partial acceptance. Any verification failure leaves
// the persisted cart untouched.
func (o *Orchestrator) Begin(ctx context.Context) (*Summary, error) {
	items, err := o.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	result, err := o.api.VerifyCart(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("could not verify cart: %w", err)
	}

	if !result.Valid {
		if err := o.storage.Save(result.Cart); err != nil {
			return nil, fmt.Errorf("could not persist corrected cart: %w", err)
		}
		o.notify.Notify("Some items were adjusted due to stock changes. Please review your order.")
		return nil, ErrCartAdjusted
	}

	o.verified = result.Cart
	return o.summary(), nil
}

// PlaceOrder validates the payment selection and submits the order.
//
// On success the persisted cart is cleared and the confirmation returned.
// On failure the cart and the verified items are left untouched and the
// server's message is returned verbatim, so the user can retry.
func (o *Orchestrator) PlaceOrder(ctx context.Context, info models.PaymentInfo) (*client.OrderConfirmation, error) {
	if len(o.verified) == 0 {
		return nil, ErrEmptyCart
	}
	if o.submitting {
		return nil, ErrSubmitInFlight
	}
	if info == nil {
		return nil, errors.New("please select a payment method")
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	o.submitting = true
	defer func() { o.submitting = false }()

	lines := make([]client.OrderLine, len(o.verified))
	for i, item := range o.verified {
		lines[i] = client.OrderLine{ID: item.ID, Quantity: item.Quantity}
	}

	confirmation, err := o.api.Checkout(ctx, lines, info)
	if err != nil {
		return nil, err
	}

	if err := o.storage.Clear(); err != nil {
		// the order went through; a stale persisted cart is the lesser harm
		o.notify.Notify("Failed to clear saved cart")
	}
	o.verified = nil
	return confirmation, nil
}

// Summary returns the current verified order summary, or nil before a
// successful Begin.
func (o *Orchestrator) Summary() *Summary {
	if len(o.verified) == 0 {
		return nil
	}
	return o.summary()
}

func (o *Orchestrator) summary() *Summary {
	subtotal := 0.0
	for _, item := range o.verified {
		subtotal += item.Subtotal()
	}
	return &Summary{
		Items:    o.verified,
		Subtotal: subtotal,
		Shipping: o.shipping,
		Total:    subtotal + o.shipping,
	}
}
