package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// maxReportEntries tope de entradas incluidas en el PDF.
const maxReportEntries = 1000

// LedgerUseCase consultas sobre el libro de traslados (solo lectura).
type LedgerUseCase struct {
	partRepo   repository.SparePartRepository
	ledgerRepo repository.TransferLogRepository
	pdf        LedgerPDFGenerator
	now        func() time.Time
}

// NewLedgerUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewLedgerUseCase(partRepo repository.SparePartRepository, ledgerRepo repository.TransferLogRepository, pdf LedgerPDFGenerator) *LedgerUseCase {
	return &LedgerUseCase{partRepo: partRepo, ledgerRepo: ledgerRepo, pdf: pdf, now: time.Now}
}

// ListByPart lista los traslados de un repuesto. No exige que el repuesto siga existiendo:
// el libro conserva su propia copia de la identidad del repuesto.
func (uc *LedgerUseCase) ListByPart(ctx context.Context, companyID, partID string, limit, offset int) (*dto.TransferLogListResponse, error) {
	if companyID == "" || partID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ledgerRepo.ListByPart(ctx, companyID, partID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByCompany lista los traslados de la empresa, opcionalmente en un rango de fechas.
func (uc *LedgerUseCase) ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) (*dto.TransferLogListResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ledgerRepo.ListByCompany(ctx, companyID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ExportPartLedgerPDF genera el reporte PDF del libro de un repuesto.
// Si el repuesto fue eliminado se usa la identidad copiada en las entradas.
func (uc *LedgerUseCase) ExportPartLedgerPDF(ctx context.Context, companyID, partID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte PDF no configurado")
	}
	if companyID == "" || partID == "" {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part != nil && part.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByPart(ctx, companyID, partID, maxReportEntries, 0)
	if err != nil {
		return nil, err
	}
	if part == nil && len(entries) == 0 {
		return nil, domain.ErrNotFound
	}

	report := LedgerReport{
		CompanyID:   companyID,
		PartID:      partID,
		Entries:     entries,
		GeneratedAt: uc.now(),
	}
	if part != nil {
		report.PartName = part.Name
		report.PartNumber = part.PartNumber
		report.CentralQuantity = part.Quantity
		report.FacilityStock = append([]entity.FacilityStock(nil), part.FacilityStock...)
	} else {
		// entries viene en orden descendente: la primera es la copia más reciente.
		report.PartDeleted = true
		report.PartName = entries[0].PartName
		report.PartNumber = entries[0].PartNumber
	}
	return uc.pdf.GenerateLedgerPDF(ctx, report)
}

func toListResponse(list []*entity.TransferLogEntry, limit, offset int) *dto.TransferLogListResponse {
	items := make([]dto.TransferLogEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.ToTransferLogEntryResponse(e))
	}
	return &dto.TransferLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
