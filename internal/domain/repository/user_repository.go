package repository

import (
	"context"
	"time"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devuelve nil, nil si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateLastAccess(ctx context.Context, id string, at time.Time) error
}
