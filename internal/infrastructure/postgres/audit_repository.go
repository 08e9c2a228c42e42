package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, company_id, user_id, user_name, action, entity, entity_id, entity_name, created_at`

// AuditRepo bitácora de auditoría sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append anexa una entrada.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.User.ID, e.User.Name, e.Action, e.Entity, e.EntityID, e.EntityName, e.Timestamp,
	)
	return wrapErr("insert audit log", err)
}

// ListByEntity historial de una entidad, más reciente primero.
func (r *AuditRepo) ListByEntity(ctx context.Context, companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_log WHERE company_id = $1 AND entity = $2 AND entity_id = $3
		ORDER BY created_at DESC, id DESC LIMIT NULLIF($4::int, 0) OFFSET $5`
	return r.list(ctx, query, companyID, entityType, entityID, limit, offset)
}

// ListByCompany historial de la empresa, más reciente primero.
func (r *AuditRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_log WHERE company_id = $1
		ORDER BY created_at DESC, id DESC LIMIT NULLIF($2::int, 0) OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

func (r *AuditRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list audit log", err)
	}
	defer rows.Close()
	list := []*entity.AuditEntry{}
	for rows.Next() {
		e, err := scanAudit(rows)
		if err != nil {
			return nil, wrapErr("scan audit log", err)
		}
		list = append(list, e)
	}
	return list, wrapErr("list audit log", rows.Err())
}

func scanAudit(row pgx.Row) (*entity.AuditEntry, error) {
	var e entity.AuditEntry
	err := row.Scan(&e.ID, &e.CompanyID, &e.User.ID, &e.User.Name, &e.Action, &e.Entity, &e.EntityID, &e.EntityName, &e.Timestamp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
