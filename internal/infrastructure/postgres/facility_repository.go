package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

// FacilityRepo implementación del puerto FacilityRepository sobre PostgreSQL.
type FacilityRepo struct {
	q Querier
}

// NewFacilityRepository construye el adaptador de persistencia para sedes.
func NewFacilityRepository(q Querier) *FacilityRepo {
	return &FacilityRepo{q: q}
}

// Create persiste una nueva sede.
func (r *FacilityRepo) Create(ctx context.Context, f *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, company_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, f.ID, f.CompanyID, f.Name, f.Address, f.CreatedAt, f.UpdatedAt)
	return wrapErr("insert facility", err)
}

// GetByID obtiene una sede por ID.
func (r *FacilityRepo) GetByID(ctx context.Context, id string) (*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM facilities WHERE id = $1`
	var f entity.Facility
	err := r.q.QueryRow(ctx, query, id).Scan(&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get facility", err)
	}
	return &f, nil
}

// Update actualiza nombre y dirección.
func (r *FacilityRepo) Update(ctx context.Context, f *entity.Facility) error {
	query := `
		UPDATE facilities SET name = $2, address = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, f.ID, f.Name, f.Address, f.UpdatedAt)
	if err != nil {
		return wrapErr("update facility", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista sedes por empresa ordenadas por nombre.
func (r *FacilityRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Facility, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM facilities WHERE company_id = $1
		ORDER BY name, id LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, wrapErr("list facilities", err)
	}
	defer rows.Close()
	var list []*entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, wrapErr("scan facility", err)
		}
		list = append(list, &f)
	}
	return list, wrapErr("list facilities", rows.Err())
}

// Delete elimina una sede por ID. Los saldos ya registrados con su nombre no se tocan.
func (r *FacilityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	return wrapErr("delete facility", err)
}
