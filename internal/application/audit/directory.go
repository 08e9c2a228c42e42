package audit

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ ports.UserDirectory = (*RepositoryDirectory)(nil)

// RepositoryDirectory adapta UserRepository al puerto UserDirectory.
type RepositoryDirectory struct {
	repo repository.UserRepository
}

// NewRepositoryDirectory construye el adaptador.
func NewRepositoryDirectory(repo repository.UserRepository) *RepositoryDirectory {
	return &RepositoryDirectory{repo: repo}
}

// ResolveUser delega en el repositorio.
func (d *RepositoryDirectory) ResolveUser(ctx context.Context, userID string) (*entity.User, error) {
	return d.repo.GetByID(ctx, userID)
}
