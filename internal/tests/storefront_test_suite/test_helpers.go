package storefront_test_suite

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/greenmarket/internal/cart"
	"github.com/rogerio-castellano/greenmarket/internal/client"
	api "github.com/rogerio-castellano/greenmarket/internal/http"
	handler "github.com/rogerio-castellano/greenmarket/internal/http/handlers"
	rl "github.com/rogerio-castellano/greenmarket/internal/http/rate_limiter"
	"github.com/rogerio-castellano/greenmarket/internal/models"
	"github.com/rogerio-castellano/greenmarket/internal/repo"
)

var (
	server      *httptest.Server
	productRepo *repo.InMemoryProductRepository
	orderRepo   *repo.InMemoryOrderRepository
)

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository(productRepo)
	handler.SetOrderRepo(orderRepo)

	handler.SetUserRepo(repo.NewInMemoryUserRepository())

	server = httptest.NewServer(api.NewRouter())
}

// newStorefront wires a real API client, a file-backed cart and a notice
// recorder against the test server, the same composition the CLI uses.
func newStorefront(t *testing.T) (*cart.Store, *client.Client, *cart.FileStorage, *noticeRecorder) {
	t.Helper()
	api := client.New(server.URL)
	storage := cart.NewFileStorage(filepath.Join(t.TempDir(), "cart.json"))
	notices := &noticeRecorder{}
	return cart.NewStore(api, storage, notices), api, storage, notices
}

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

type noticeRecorder struct {
	messages []string
}

func (n *noticeRecorder) Notify(message string) {
	n.messages = append(n.messages, message)
}
