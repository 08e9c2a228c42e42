package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// FacilityUseCase casos de uso CRUD para el directorio de sedes.
type FacilityUseCase struct {
	repo    repository.FacilityRepository
	auditor *audit.Writer
}

// NewFacilityUseCase construye el caso de uso.
func NewFacilityUseCase(repo repository.FacilityRepository, auditor *audit.Writer) *FacilityUseCase {
	return &FacilityUseCase{repo: repo, auditor: auditor}
}

// Create crea una nueva sede y registra la auditoría.
func (uc *FacilityUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	// El actor se valida antes de escribir para no dejar sedes sin atribuir.
	actor, err := uc.auditor.ResolveActor(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	facility := &entity.Facility{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, facility); err != nil {
		return nil, err
	}
	if _, err := uc.auditor.Record(ctx, audit.Input{
		ActingUserID: actor.ID,
		Action:       entity.AuditActionCreate,
		EntityType:   entity.EntityFacility,
		EntityID:     facility.ID,
		EntityName:   facility.Name,
		CompanyID:    companyID,
	}); err != nil {
		return nil, err
	}
	return toFacilityResponse(facility), nil
}

// GetByID obtiene una sede de la empresa. Devuelve nil, nil si no existe o es de otra empresa.
func (uc *FacilityUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.FacilityResponse, error) {
	facility, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if facility == nil || facility.CompanyID != companyID {
		return nil, nil
	}
	return toFacilityResponse(facility), nil
}

// Update actualiza una sede. Los saldos ya registrados conservan el nombre con el que se crearon.
func (uc *FacilityUseCase) Update(ctx context.Context, companyID, userID, id string, in dto.UpdateFacilityRequest) (*dto.FacilityResponse, error) {
	actor, err := uc.auditor.ResolveActor(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	facility, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if facility == nil || facility.CompanyID != companyID {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		facility.Name = *in.Name
	}
	if in.Address != nil {
		facility.Address = *in.Address
	}
	facility.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, facility); err != nil {
		return nil, err
	}
	if _, err := uc.auditor.Record(ctx, audit.Input{
		ActingUserID: actor.ID,
		Action:       entity.AuditActionUpdate,
		EntityType:   entity.EntityFacility,
		EntityID:     facility.ID,
		EntityName:   facility.Name,
		CompanyID:    companyID,
	}); err != nil {
		return nil, err
	}
	return toFacilityResponse(facility), nil
}

// List lista sedes por empresa con paginación.
func (uc *FacilityUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.FacilityListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacilityResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFacilityResponse(f))
	}
	return &dto.FacilityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toFacilityResponse(f *entity.Facility) *dto.FacilityResponse {
	if f == nil {
		return nil
	}
	return &dto.FacilityResponse{
		ID:        f.ID,
		CompanyID: f.CompanyID,
		Name:      f.Name,
		Address:   f.Address,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
