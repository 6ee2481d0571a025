package repo

import "github.com/rogerio-castellano/greenmarket/internal/models"

// UserRepository defines the interface for user lookup and creation.
type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}
