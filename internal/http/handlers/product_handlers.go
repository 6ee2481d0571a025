package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/greenmarket/internal/models"
	repo "github.com/rogerio-castellano/greenmarket/internal/repo"
)

// GetProductsHandler godoc
// @Summary List the full product catalog
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	if redisService != nil {
		if products, ok := redisService.CachedCatalog(); ok {
			writeJSON(w, http.StatusOK, products)
			return
		}
	}

	products, err := productRepo.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if redisService != nil {
		redisService.StoreCatalog(products)
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := productRepo.GetByID(id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CheckStockHandler godoc
// @Summary Report availability and stock count for a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} StockResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id}/stock [get]
func CheckStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := productRepo.GetByID(id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	writeJSON(w, http.StatusOK, StockResponse{
		Available: product.InStock(),
		Stock:     product.Stock,
	})
}

// CreateProductHandler godoc
// @Summary Create a new catalog product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Router /api/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "product name already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	if redisService != nil {
		redisService.InvalidateCatalog()
	}
	writeJSON(w, http.StatusCreated, created)
}

// AdjustStockHandler godoc
// @Summary Adjust stock of a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param adjustment body StockAdjustmentRequest true "Stock change"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/products/{id}/stock [put]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req StockAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	product, err := productRepo.AdjustStock(id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrInvalidStockChange):
			writeError(w, http.StatusConflict, "stock cannot be negative")
		default:
			writeError(w, http.StatusInternalServerError, "could not update stock")
		}
		return
	}

	if product.Stock == 0 {
		log.Printf("product %d (%s) is out of stock", product.ID, product.Name)
	}
	if redisService != nil {
		redisService.InvalidateCatalog()
	}
	writeJSON(w, http.StatusOK, product)
}

func productID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
