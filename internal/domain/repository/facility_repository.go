package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// FacilityRepository define el puerto de persistencia para Facility (DIP).
type FacilityRepository interface {
	Create(ctx context.Context, facility *entity.Facility) error
	GetByID(ctx context.Context, id string) (*entity.Facility, error)
	Update(ctx context.Context, facility *entity.Facility) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Facility, error)
	Delete(ctx context.Context, id string) error
}
