package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/greenmarket/internal/http/handlers"
)

func TestLoginRejectsBadCredentials(t *testing.T) {
	tests := []struct {
		name     string
		creds    handler.CredentialsRequest
		expected int
	}{
		{
			name:     "wrong password",
			creds:    handler.CredentialsRequest{Username: "admin", Password: "wrong"},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "unknown user",
			creds:    handler.CredentialsRequest{Username: "nobody", Password: "secret"},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "missing password",
			creds:    handler.CredentialsRequest{Username: "admin"},
			expected: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(http.MethodPost, "/api/auth/login", tt.creds, "")
			if w.Code != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestProtectedRouteRejectsInvalidToken(t *testing.T) {
	t.Cleanup(clearAll)

	w := doRequest(http.MethodPost, "/api/products", handler.ProductRequest{
		Name: "Hemp Backpack", Price: 2499, Category: "Accessories", Stock: 3,
	}, "not-a-token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
