package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// TransferLogRepository libro de traslados de solo anexado: no expone update ni delete.
type TransferLogRepository interface {
	Append(ctx context.Context, entry *entity.TransferLogEntry) error
	GetByID(ctx context.Context, id string) (*entity.TransferLogEntry, error)
	ListByPart(ctx context.Context, companyID, partID string, limit, offset int) ([]*entity.TransferLogEntry, error)
	ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.TransferLogEntry, error)
}
