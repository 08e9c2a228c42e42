package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
)

const companyID = "company-1"

func seedPart(t *testing.T, s *memory.Store, id string, qty int) {
	t.Helper()
	require.NoError(t, s.SpareParts().Create(context.Background(), &entity.SparePart{
		ID:         id,
		CompanyID:  companyID,
		Name:       "Filtro HEPA",
		PartNumber: "HF-100",
		Quantity:   qty,
		CreatedAt:  time.Now(),
	}))
}

type repos struct {
	parts  repository.SparePartRepository
	ledger repository.TransferLogRepository
	audit  repository.AuditRepository
}

func run(s *memory.Store, fn func(r repos) error) error {
	return s.Run(context.Background(), func(p repository.SparePartRepository, l repository.TransferLogRepository, a repository.AuditRepository) error {
		return fn(repos{p, l, a})
	})
}

func TestStore_RunCommitsAllWrites(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 20)
	ctx := context.Background()

	err := run(s, func(r repos) error {
		part, err := r.parts.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		part.Quantity = 15
		require.NoError(t, r.parts.Update(ctx, part))
		require.NoError(t, r.ledger.Append(ctx, &entity.TransferLogEntry{ID: "t1", CompanyID: companyID, PartID: "p1"}))
		return r.audit.Append(ctx, &entity.AuditEntry{ID: "a1", CompanyID: companyID, Entity: entity.EntitySparePart, EntityID: "p1"})
	})
	require.NoError(t, err)

	part, err := s.SpareParts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 15, part.Quantity)
	assert.Equal(t, int64(1), part.Version)

	entries, _ := s.TransferLog().ListByPart(ctx, companyID, "p1", 0, 0)
	assert.Len(t, entries, 1)
	audits, _ := s.Audit().ListByEntity(ctx, companyID, entity.EntitySparePart, "p1", 0, 0)
	assert.Len(t, audits, 1)
}

func TestStore_RunDiscardsOnError(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 20)
	ctx := context.Background()
	boom := errors.New("boom")

	err := run(s, func(r repos) error {
		part, _ := r.parts.GetForUpdate(ctx, "p1")
		part.Quantity = 0
		_ = r.parts.Update(ctx, part)
		_ = r.ledger.Append(ctx, &entity.TransferLogEntry{ID: "t1", CompanyID: companyID, PartID: "p1"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	part, _ := s.SpareParts().GetByID(ctx, "p1")
	assert.Equal(t, 20, part.Quantity)
	entries, _ := s.TransferLog().ListByPart(ctx, companyID, "p1", 0, 0)
	assert.Empty(t, entries)
}

func TestStore_ConcurrentWriteConflicts(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 10)
	ctx := context.Background()

	// La transacción externa lee; otra confirma antes que ella.
	err := run(s, func(r repos) error {
		part, _ := r.parts.GetForUpdate(ctx, "p1")
		require.NoError(t, run(s, func(inner repos) error {
			p, _ := inner.parts.GetForUpdate(ctx, "p1")
			p.Quantity = 4
			return inner.parts.Update(ctx, p)
		}))
		part.Quantity = 7
		return r.parts.Update(ctx, part)
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	part, _ := s.SpareParts().GetByID(ctx, "p1")
	assert.Equal(t, 4, part.Quantity, "la escritura perdedora no se aplica")
}

func TestStore_ReadOnlyStaleReadConflicts(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 10)
	ctx := context.Background()

	err := run(s, func(r repos) error {
		_, _ = r.parts.GetForUpdate(ctx, "p1")
		require.NoError(t, run(s, func(inner repos) error {
			p, _ := inner.parts.GetForUpdate(ctx, "p1")
			p.Quantity = 1
			return inner.parts.Update(ctx, p)
		}))
		return r.ledger.Append(ctx, &entity.TransferLogEntry{ID: "t1", CompanyID: companyID, PartID: "p1"})
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	entries, _ := s.TransferLog().ListByPart(ctx, companyID, "p1", 0, 0)
	assert.Empty(t, entries)
}

func TestStore_FailNextCommits(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 10)
	s.FailNextCommits(domain.ErrTransient)

	err := run(s, func(r repos) error { return nil })
	require.ErrorIs(t, err, domain.ErrTransient)
	require.NoError(t, run(s, func(r repos) error { return nil }))
}

func TestStore_GetByIDReturnsCopy(t *testing.T) {
	s := memory.NewStore()
	seedPart(t, s, "p1", 10)
	ctx := context.Background()

	p, _ := s.SpareParts().GetByID(ctx, "p1")
	p.Quantity = 0
	again, _ := s.SpareParts().GetByID(ctx, "p1")
	assert.Equal(t, 10, again.Quantity)

	missing, err := s.SpareParts().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransferLogRepo_ListByCompanyFiltersAndOrders(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, s.TransferLog().Append(ctx, &entity.TransferLogEntry{
			ID: id, CompanyID: companyID, PartID: "p1", Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.TransferLog().Append(ctx, &entity.TransferLogEntry{ID: "other", CompanyID: "company-2", Timestamp: base}))

	all, _ := s.TransferLog().ListByCompany(ctx, companyID, nil, nil, 0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "t3", all[0].ID, "más reciente primero")

	from := base.Add(30 * time.Minute)
	to := base.Add(90 * time.Minute)
	ranged, _ := s.TransferLog().ListByCompany(ctx, companyID, &from, &to, 0, 0)
	require.Len(t, ranged, 1)
	assert.Equal(t, "t2", ranged[0].ID)

	page, _ := s.TransferLog().ListByCompany(ctx, companyID, nil, nil, 1, 1)
	require.Len(t, page, 1)
	assert.Equal(t, "t2", page[0].ID)

	beyond, _ := s.TransferLog().ListByCompany(ctx, companyID, nil, nil, 10, 10)
	assert.Empty(t, beyond)
}
