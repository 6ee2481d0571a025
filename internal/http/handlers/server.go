package handlers

import (
	"github.com/rogerio-castellano/greenmarket/internal/redissvc"
	repo "github.com/rogerio-castellano/greenmarket/internal/repo"
)

var (
	productRepo repo.ProductRepository
	orderRepo   repo.OrderRepository
	userRepo    repo.UserRepository

	redisService *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	redisService = rs
}
