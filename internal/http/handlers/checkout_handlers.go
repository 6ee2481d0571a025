package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	models "github.com/rogerio-castellano/greenmarket/internal/models"
	repo "github.com/rogerio-castellano/greenmarket/internal/repo"
)

// CheckoutHandler godoc
// @Summary Place an order
// @Description Verifies stock for every item, creates the order at current
// @Description catalog prices and decrements stock, all-or-nothing.
// @Tags checkout
// @Accept json
// @Produce json
// @Param order body CheckoutRequest true "Items and payment selection"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		writeError(w, http.StatusBadRequest, "Unsupported payment method")
		return
	}

	lines := make([]repo.OrderLine, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		lines[i] = repo.OrderLine{ProductID: item.ID, Quantity: item.Quantity}
	}

	order, err := orderRepo.Place(lines, method)
	if err != nil {
		var stockErr *repo.InsufficientStockError
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product not found")
		case errors.As(err, &stockErr):
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Not enough stock for %s (available: %d)", stockErr.ProductName, stockErr.Available))
		default:
			writeError(w, http.StatusInternalServerError, "Could not place order")
		}
		return
	}

	if redisService != nil {
		redisService.InvalidateCatalog()
	}
	writeJSON(w, http.StatusOK, CheckoutResponse{
		Success:   true,
		OrderID:   order.ID,
		Reference: order.Reference,
		Timestamp: order.CreatedAt.Format(time.RFC3339),
		Total:     order.Total,
	})
}
