package handlers

import (
	"errors"
	"fmt"
	"net/http"

	models "github.com/rogerio-castellano/greenmarket/internal/models"
	repo "github.com/rogerio-castellano/greenmarket/internal/repo"
)

// VerifyCartHandler godoc
// @Summary Verify a client cart against current stock
// @Description Clamps each requested quantity to available stock and reports
// @Description whether any line had to change. The corrected cart carries
// @Description current catalog prices and stock counts.
// @Tags cart
// @Accept json
// @Produce json
// @Param cart body VerifyCartRequest true "Cart to verify"
// @Success 200 {object} VerifyCartResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cart/verify [post]
func VerifyCartHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyCartRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	verified := []models.CartLineItem{}
	valid := true
	for _, item := range req.Items {
		product, err := productRepo.GetByID(item.ID)
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Product %d not found", item.ID))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not verify cart")
			return
		}

		available := min(item.Quantity, product.Stock)
		verified = append(verified, models.CartLineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: available,
			MaxStock: product.Stock,
		})
		if available != item.Quantity {
			valid = false
		}
	}

	message := "Stock verified"
	if !valid {
		message = "Some items adjusted to available stock"
	}
	writeJSON(w, http.StatusOK, VerifyCartResponse{
		Valid:   valid,
		Cart:    verified,
		Message: message,
	})
}
