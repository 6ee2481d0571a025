package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/greenmarket/internal/auth"
	"github.com/rogerio-castellano/greenmarket/internal/config"
	"github.com/rogerio-castellano/greenmarket/internal/db"
	api "github.com/rogerio-castellano/greenmarket/internal/http"
	"github.com/rogerio-castellano/greenmarket/internal/http/handlers"
	rl "github.com/rogerio-castellano/greenmarket/internal/http/rate_limiter"
	"github.com/rogerio-castellano/greenmarket/internal/models"
	"github.com/rogerio-castellano/greenmarket/internal/redissvc"
	"github.com/rogerio-castellano/greenmarket/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// @title GreenMarket API
// @version 1.0
// @description REST API for the GreenMarket storefront: catalog, cart verification and checkout.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	go rl.StartVisitorCleanupLoop()

	if cfg.RedisAddr != "" {
		ctx := context.Background()
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		handlers.SetRedisService(redissvc.NewRedisService(rdb, ctx))
	}

	userRepo := setupRepositories(cfg)
	seedAdmin(userRepo, cfg)

	r := api.NewRouter()
	log.Printf("Server running on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}

func setupRepositories(cfg *config.Config) repo.UserRepository {
	if cfg.DatabaseURL == "" {
		log.Println("Using in-memory repositories with sample catalog")
		products := repo.NewInMemoryProductRepository()
		for _, p := range db.SampleProducts {
			if _, err := products.Create(p); err != nil {
				log.Fatalf("Could not seed product %q: %v", p.Name, err)
			}
		}
		users := repo.NewInMemoryUserRepository()
		handlers.SetProductRepo(products)
		handlers.SetOrderRepo(repo.NewInMemoryOrderRepository(products))
		handlers.SetUserRepo(users)
		return users
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	if err := db.Initialize(database); err != nil {
		log.Fatal("Could not initialize database:", err)
	}

	users := repo.NewPostgresUserRepository(database)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetOrderRepo(repo.NewPostgresOrderRepository(database))
	handlers.SetUserRepo(users)
	return users
}

func seedAdmin(users repo.UserRepository, cfg *config.Config) {
	if cfg.AdminPass == "" {
		log.Println("ADMIN_PASSWORD not set, catalog management disabled")
		return
	}

	if _, err := users.GetByUsername(cfg.AdminUser); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Could not hash admin password: %v", err)
	}
	_, err = users.CreateUser(models.User{
		Username:     cfg.AdminUser,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil && !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		log.Fatalf("Could not create admin user: %v", err)
	}
}
