package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// UpdateRole cambia el rol; ErrNotFound si el usuario no existe.
	UpdateRole(ctx context.Context, id, role string, updatedAt time.Time) error
	// UpdatePassword reemplaza el hash; ErrNotFound si el usuario no existe.
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}
