package handlers

import "net/http"

// HomeHandler reports API status and the main endpoints.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"message": "GreenMarket API is operational",
		"endpoints": map[string]string{
			"products": "/api/products",
			"checkout": "/api/checkout",
		},
	})
}
