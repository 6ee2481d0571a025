package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds every tunable for the API server and the storefront client.
// Values come from the environment with sensible local-dev defaults.
type Config struct {
	// server
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	AdminUser   string
	AdminPass   string

	// storefront client
	APIBaseURL  string
	CartFile    string
	ShippingFee float64
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("CART_FILE", "cart.json")
	v.SetDefault("SHIPPING_FEE", 5.00)

	cfg := &Config{
		ListenAddr:  v.GetString("LISTEN_ADDR"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		AdminUser:   v.GetString("ADMIN_USERNAME"),
		AdminPass:   v.GetString("ADMIN_PASSWORD"),
		APIBaseURL:  v.GetString("API_BASE_URL"),
		CartFile:    v.GetString("CART_FILE"),
		ShippingFee: v.GetFloat64("SHIPPING_FEE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, falling back to in-memory repositories")
	}

	return cfg
}
