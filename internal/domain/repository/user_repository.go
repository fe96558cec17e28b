package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update modifica datos de perfil (nombre, email, teléfono, empresa); no toca rol ni plan.
	Update(ctx context.Context, user *entity.User) error
	UpdatePlan(ctx context.Context, id, plan string, updatedAt time.Time) error
	List(ctx context.Context) ([]*entity.User, error)
}
