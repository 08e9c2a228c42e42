package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.TransferLogRepository = (*TransferLogRepo)(nil)

const transferLogColumns = `id, company_id, part_id, part_name, part_number, quantity, direction,
	from_location, from_facility_id, to_facility_id, to_facility_name,
	transferred_by_id, transferred_by, created_at`

// TransferLogRepo libro de traslados sobre PostgreSQL. La tabla rechaza UPDATE y DELETE.
type TransferLogRepo struct {
	q Querier
}

// NewTransferLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferLogRepository(q Querier) *TransferLogRepo {
	return &TransferLogRepo{q: q}
}

// Append anexa una entrada.
func (r *TransferLogRepo) Append(ctx context.Context, e *entity.TransferLogEntry) error {
	query := `
		INSERT INTO transfer_log (` + transferLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.PartID, e.PartName, e.PartNumber, e.Quantity, e.Direction,
		e.FromLocation, e.FromFacilityID, e.ToFacilityID, e.ToFacilityName,
		e.TransferredByID, e.TransferredBy, e.Timestamp,
	)
	return wrapErr("insert transfer log", err)
}

// GetByID obtiene una entrada por ID.
func (r *TransferLogRepo) GetByID(ctx context.Context, id string) (*entity.TransferLogEntry, error) {
	query := `SELECT ` + transferLogColumns + ` FROM transfer_log WHERE id = $1`
	e, err := scanTransferLog(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get transfer log", err)
	}
	return e, nil
}

// ListByPart entradas de un repuesto, más reciente primero.
func (r *TransferLogRepo) ListByPart(ctx context.Context, companyID, partID string, limit, offset int) ([]*entity.TransferLogEntry, error) {
	query := `
		SELECT ` + transferLogColumns + `
		FROM transfer_log WHERE company_id = $1 AND part_id = $2
		ORDER BY created_at DESC, id DESC LIMIT NULLIF($3::int, 0) OFFSET $4`
	return r.list(ctx, query, companyID, partID, limit, offset)
}

// ListByCompany entradas de la empresa en el rango [from, to] (extremos opcionales).
func (r *TransferLogRepo) ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.TransferLogEntry, error) {
	query := `
		SELECT ` + transferLogColumns + `
		FROM transfer_log
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC, id DESC LIMIT NULLIF($4::int, 0) OFFSET $5`
	return r.list(ctx, query, companyID, from, to, limit, offset)
}

func (r *TransferLogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TransferLogEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list transfer log", err)
	}
	defer rows.Close()
	list := []*entity.TransferLogEntry{}
	for rows.Next() {
		e, err := scanTransferLog(rows)
		if err != nil {
			return nil, wrapErr("scan transfer log", err)
		}
		list = append(list, e)
	}
	return list, wrapErr("list transfer log", rows.Err())
}

func scanTransferLog(row pgx.Row) (*entity.TransferLogEntry, error) {
	var e entity.TransferLogEntry
	err := row.Scan(&e.ID, &e.CompanyID, &e.PartID, &e.PartName, &e.PartNumber, &e.Quantity, &e.Direction,
		&e.FromLocation, &e.FromFacilityID, &e.ToFacilityID, &e.ToFacilityName,
		&e.TransferredByID, &e.TransferredBy, &e.Timestamp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
