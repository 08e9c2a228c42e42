package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// UserRepository lectura del directorio de usuarios (DIP). Altas y bajas son externas.
type UserRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// Upsert lo usa el seed y los tests de integración.
	Upsert(ctx context.Context, user *entity.User) error
}
