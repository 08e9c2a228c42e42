package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.SparePartRepository = (*SparePartRepo)(nil)

const sparePartColumns = `id, company_id, name, part_number, asset_model, quantity, version, created_at, updated_at`

// SparePartRepo implementación de SparePartRepository sobre PostgreSQL (usable con pool o tx).
type SparePartRepo struct {
	q Querier
}

// NewSparePartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSparePartRepository(q Querier) *SparePartRepo {
	return &SparePartRepo{q: q}
}

// Create persiste el repuesto y sus saldos por sede iniciales.
func (r *SparePartRepo) Create(ctx context.Context, part *entity.SparePart) error {
	query := `
		INSERT INTO spare_parts (` + sparePartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.CompanyID, part.Name, part.PartNumber, part.AssetModel,
		part.Quantity, part.Version, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert spare part", err)
	}
	return r.saveFacilityStock(ctx, part)
}

// GetByID obtiene el repuesto con sus saldos por sede.
func (r *SparePartRepo) GetByID(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el repuesto y bloquea su fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *SparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.get(ctx, id, true)
}

func (r *SparePartRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.SparePart, error) {
	query := `SELECT ` + sparePartColumns + ` FROM spare_parts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	part, err := scanSparePart(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get spare part", err)
	}
	stock, err := r.facilityStock(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	part.FacilityStock = stock[id]
	return part, nil
}

// Update escribe cantidad central y saldos por sede condicionado a la versión leída.
func (r *SparePartRepo) Update(ctx context.Context, part *entity.SparePart) error {
	query := `
		UPDATE spare_parts
		SET quantity = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`
	cmd, err := r.q.Exec(ctx, query, part.ID, part.Quantity, part.UpdatedAt, part.Version)
	if err != nil {
		return wrapErr("update spare part", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update spare part %s: %w", part.ID, domain.ErrConflict)
	}
	part.Version++
	return r.saveFacilityStock(ctx, part)
}

// saveFacilityStock inserta o actualiza los saldos. El nombre de la sede no se sobrescribe.
func (r *SparePartRepo) saveFacilityStock(ctx context.Context, part *entity.SparePart) error {
	query := `
		INSERT INTO facility_stock (part_id, facility_id, facility_name, quantity, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (part_id, facility_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`
	for i, fs := range part.FacilityStock {
		if _, err := r.q.Exec(ctx, query, part.ID, fs.FacilityID, fs.FacilityName, fs.Quantity, i); err != nil {
			return wrapErr("upsert facility stock", err)
		}
	}
	return nil
}

// ListByCompany lista repuestos por empresa con paginación, más recientes primero.
func (r *SparePartRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SparePart, error) {
	query := `
		SELECT ` + sparePartColumns + `
		FROM spare_parts WHERE company_id = $1
		ORDER BY created_at DESC, id LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, wrapErr("list spare parts", err)
	}
	defer rows.Close()
	var (
		list []*entity.SparePart
		ids  []string
	)
	for rows.Next() {
		p, err := scanSparePart(rows)
		if err != nil {
			return nil, wrapErr("scan spare part", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list spare parts", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	stock, err := r.facilityStock(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.FacilityStock = stock[p.ID]
	}
	return list, nil
}

func (r *SparePartRepo) facilityStock(ctx context.Context, partIDs []string) (map[string][]entity.FacilityStock, error) {
	query := `
		SELECT part_id, facility_id, facility_name, quantity
		FROM facility_stock WHERE part_id = ANY($1)
		ORDER BY part_id, position`
	rows, err := r.q.Query(ctx, query, partIDs)
	if err != nil {
		return nil, wrapErr("list facility stock", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.FacilityStock, len(partIDs))
	for _, id := range partIDs {
		out[id] = []entity.FacilityStock{}
	}
	for rows.Next() {
		var (
			partID string
			fs     entity.FacilityStock
		)
		if err := rows.Scan(&partID, &fs.FacilityID, &fs.FacilityName, &fs.Quantity); err != nil {
			return nil, wrapErr("scan facility stock", err)
		}
		out[partID] = append(out[partID], fs)
	}
	return out, wrapErr("list facility stock", rows.Err())
}

func scanSparePart(row pgx.Row) (*entity.SparePart, error) {
	var p entity.SparePart
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.PartNumber, &p.AssetModel,
		&p.Quantity, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
