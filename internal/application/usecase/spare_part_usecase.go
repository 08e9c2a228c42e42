package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// SparePartUseCase alta y consulta de repuestos. Las cantidades solo cambian vía traslados.
type SparePartUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.SparePartRepository
	auditor  *audit.Writer
}

// NewSparePartUseCase construye el caso de uso.
func NewSparePartUseCase(txRunner inventory.TxRunner, repo repository.SparePartRepository, auditor *audit.Writer) *SparePartUseCase {
	return &SparePartUseCase{txRunner: txRunner, repo: repo, auditor: auditor}
}

// Create registra un repuesto con su stock central inicial y sin saldos por sede.
// El alta y su entrada de auditoría (CREATE) se confirman juntas.
func (uc *SparePartUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSparePartRequest) (*dto.SparePartResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if companyID == "" || in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	part := &entity.SparePart{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		PartNumber:    in.PartNumber,
		AssetModel:    in.AssetModel,
		Quantity:      in.Quantity,
		FacilityStock: []entity.FacilityStock{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	actor, err := uc.auditor.ResolveActor(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(
		partRepo repository.SparePartRepository,
		_ repository.TransferLogRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := partRepo.Create(ctx, part); err != nil {
			return err
		}
		_, err := uc.auditor.RecordForActor(ctx, auditRepo, actor, audit.Input{
			ActingUserID: actor.ID,
			Action:       entity.AuditActionCreate,
			EntityType:   entity.EntitySparePart,
			EntityID:     part.ID,
			EntityName:   part.Name,
			CompanyID:    companyID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSparePartResponse(part), nil
}

// GetByID obtiene un repuesto de la empresa. Devuelve nil, nil si no existe o es de otra empresa.
func (uc *SparePartUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SparePartResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil || part.CompanyID != companyID {
		return nil, nil
	}
	return dto.ToSparePartResponse(part), nil
}

// List lista repuestos por empresa con paginación.
func (uc *SparePartUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SparePartListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SparePartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToSparePartResponse(p))
	}
	return &dto.SparePartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
