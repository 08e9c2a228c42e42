package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// AuditRepository bitácora de auditoría compartida por todos los flujos que mutan datos.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	ListByEntity(ctx context.Context, companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditEntry, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditEntry, error)
}
