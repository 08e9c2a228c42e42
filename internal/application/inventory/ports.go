package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios
// atados a esa transacción. O se confirma todo lo escrito por fn (repuesto, libro y
// auditoría) o nada. Un conflicto de concurrencia se reporta como domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.SparePartRepository,
		ledgerRepo repository.TransferLogRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// EventPublisher publica traslados ya confirmados hacia consumidores externos.
type EventPublisher interface {
	PublishTransfer(ctx context.Context, entry *entity.TransferLogEntry) error
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

// PublishTransfer no hace nada.
func (NopPublisher) PublishTransfer(context.Context, *entity.TransferLogEntry) error { return nil }

// LedgerReport datos del reporte PDF del libro de traslados de un repuesto.
type LedgerReport struct {
	CompanyID       string
	PartID          string
	PartName        string
	PartNumber      string
	CentralQuantity int
	FacilityStock   []entity.FacilityStock
	PartDeleted     bool
	Entries         []*entity.TransferLogEntry
	GeneratedAt     time.Time
}

// LedgerPDFGenerator genera la representación PDF del libro de traslados.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, report LedgerReport) ([]byte, error)
}
