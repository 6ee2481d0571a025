package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/greenmarket/internal/http"
	handler "github.com/rogerio-castellano/greenmarket/internal/http/handlers"
	rl "github.com/rogerio-castellano/greenmarket/internal/http/rate_limiter"
	"github.com/rogerio-castellano/greenmarket/internal/models"
	"github.com/rogerio-castellano/greenmarket/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	orderRepo   *repo.InMemoryOrderRepository
	router      http.Handler
)

func init() {
	setupTestRepos("secret")
	router = api.NewRouter()

	var err error
	token, err = generateToken("admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository(productRepo)
	handler.SetOrderRepo(orderRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
}

func generateToken(username, password string) (string, error) {
	w := doRequest(http.MethodPost, "/api/auth/login", handler.CredentialsRequest{
		Username: username,
		Password: password,
	}, "")
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var result handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func doRequest(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// seedProduct inserts a product directly into the repository.
func seedProduct(name string, price float64, category string, stock int) models.Product {
	p, err := productRepo.Create(models.Product{
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
	})
	if err != nil {
		panic(err)
	}
	return p
}

func clearAll() {
	productRepo.Clear()
	orderRepo.Clear()
	rl.CleanupAllVisitors()
}
