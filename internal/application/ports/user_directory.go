package ports

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// UserDirectory puerto de salida hacia el directorio de usuarios (externo a este servicio).
// La auditoría lo usa para atribuir cada mutación a un actor con nombre visible.
type UserDirectory interface {
	// ResolveUser devuelve nil, nil si el usuario no existe.
	ResolveUser(ctx context.Context, userID string) (*entity.User, error)
}
