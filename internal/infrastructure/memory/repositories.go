package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var (
	_ repository.SparePartRepository   = (*SparePartRepo)(nil)
	_ repository.SparePartRepository   = (*txSparePartRepo)(nil)
	_ repository.TransferLogRepository = (*TransferLogRepo)(nil)
	_ repository.TransferLogRepository = (*txTransferLogRepo)(nil)
	_ repository.AuditRepository       = (*AuditRepo)(nil)
	_ repository.AuditRepository       = (*txAuditRepo)(nil)
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.FacilityRepository    = (*FacilityRepo)(nil)
)

// ── Repuestos ────────────────────────────────────────────────────────────────

// SparePartRepo acceso directo (sin transacción) a los repuestos confirmados.
type SparePartRepo struct{ s *Store }

// Create inserta un repuesto nuevo.
func (r *SparePartRepo) Create(_ context.Context, part *entity.SparePart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parts[part.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.parts[part.ID] = part.Clone()
	return nil
}

// GetByID devuelve una copia del repuesto o nil, nil.
func (r *SparePartRepo) GetByID(_ context.Context, id string) (*entity.SparePart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.parts[id].Clone(), nil
}

// GetForUpdate fuera de transacción equivale a GetByID.
func (r *SparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.GetByID(ctx, id)
}

// Update escritura condicional por versión.
func (r *SparePartRepo) Update(_ context.Context, part *entity.SparePart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.parts[part.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != part.Version {
		return fmt.Errorf("update repuesto %s: %w", part.ID, domain.ErrConflict)
	}
	part.Version++
	r.s.parts[part.ID] = part.Clone()
	return nil
}

// ListByCompany lista los repuestos de la empresa ordenados por creación descendente.
func (r *SparePartRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.SparePart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.SparePart
	for _, p := range r.s.parts {
		if p.CompanyID == companyID {
			list = append(list, p.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, limit, offset), nil
}

type txSparePartRepo struct{ tx *memTx }

func (r *txSparePartRepo) Create(_ context.Context, part *entity.SparePart) error {
	r.tx.created = append(r.tx.created, part.Clone())
	return nil
}

func (r *txSparePartRepo) GetByID(ctx context.Context, id string) (*entity.SparePart, error) {
	return r.GetForUpdate(ctx, id)
}

// GetForUpdate devuelve lo escrito en esta transacción o, si no, el estado confirmado,
// registrando la versión leída para validarla en commit.
func (r *txSparePartRepo) GetForUpdate(_ context.Context, id string) (*entity.SparePart, error) {
	if w, ok := r.tx.writes[id]; ok {
		return w.part.Clone(), nil
	}
	r.tx.s.mu.RLock()
	p := r.tx.s.parts[id].Clone()
	r.tx.s.mu.RUnlock()
	if p == nil {
		return nil, nil
	}
	if _, seen := r.tx.readVersions[id]; !seen {
		r.tx.readVersions[id] = p.Version
	}
	return p, nil
}

func (r *txSparePartRepo) Update(_ context.Context, part *entity.SparePart) error {
	expected := part.Version
	if prev, ok := r.tx.writes[part.ID]; ok {
		if prev.part.Version != expected {
			return fmt.Errorf("update repuesto %s: %w", part.ID, domain.ErrConflict)
		}
		expected = prev.expected
	}
	part.Version++
	r.tx.writes[part.ID] = stagedWrite{expected: expected, part: part.Clone()}
	return nil
}

func (r *txSparePartRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SparePart, error) {
	return (&SparePartRepo{s: r.tx.s}).ListByCompany(ctx, companyID, limit, offset)
}

// ── Libro de traslados ───────────────────────────────────────────────────────

// TransferLogRepo lectura del libro confirmado y anexado directo.
type TransferLogRepo struct{ s *Store }

// Append anexa fuera de transacción.
func (r *TransferLogRepo) Append(_ context.Context, entry *entity.TransferLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

// GetByID busca una entrada por ID; nil, nil si no existe.
func (r *TransferLogRepo) GetByID(_ context.Context, id string) (*entity.TransferLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.ledger {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByPart entradas del repuesto, más reciente primero.
func (r *TransferLogRepo) ListByPart(_ context.Context, companyID, partID string, limit, offset int) ([]*entity.TransferLogEntry, error) {
	return r.filter(func(e *entity.TransferLogEntry) bool {
		return e.CompanyID == companyID && e.PartID == partID
	}, limit, offset), nil
}

// ListByCompany entradas de la empresa en [from, to], más reciente primero.
func (r *TransferLogRepo) ListByCompany(_ context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.TransferLogEntry, error) {
	return r.filter(func(e *entity.TransferLogEntry) bool {
		if e.CompanyID != companyID {
			return false
		}
		if from != nil && e.Timestamp.Before(*from) {
			return false
		}
		if to != nil && e.Timestamp.After(*to) {
			return false
		}
		return true
	}, limit, offset), nil
}

func (r *TransferLogRepo) filter(keep func(*entity.TransferLogEntry) bool, limit, offset int) []*entity.TransferLogEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.TransferLogEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		if e := r.s.ledger[i]; keep(e) {
			cp := *e
			list = append(list, &cp)
		}
	}
	return paginate(list, limit, offset)
}

type txTransferLogRepo struct{ tx *memTx }

func (r *txTransferLogRepo) Append(_ context.Context, entry *entity.TransferLogEntry) error {
	cp := *entry
	r.tx.ledger = append(r.tx.ledger, &cp)
	return nil
}

func (r *txTransferLogRepo) GetByID(ctx context.Context, id string) (*entity.TransferLogEntry, error) {
	return (&TransferLogRepo{s: r.tx.s}).GetByID(ctx, id)
}

func (r *txTransferLogRepo) ListByPart(ctx context.Context, companyID, partID string, limit, offset int) ([]*entity.TransferLogEntry, error) {
	return (&TransferLogRepo{s: r.tx.s}).ListByPart(ctx, companyID, partID, limit, offset)
}

func (r *txTransferLogRepo) ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.TransferLogEntry, error) {
	return (&TransferLogRepo{s: r.tx.s}).ListByCompany(ctx, companyID, from, to, limit, offset)
}

// ── Auditoría ────────────────────────────────────────────────────────────────

// AuditRepo bitácora confirmada.
type AuditRepo struct{ s *Store }

// Append anexa fuera de transacción.
func (r *AuditRepo) Append(_ context.Context, entry *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

// ListByEntity entradas de una entidad, más reciente primero.
func (r *AuditRepo) ListByEntity(_ context.Context, companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(func(e *entity.AuditEntry) bool {
		return e.CompanyID == companyID && e.Entity == entityType && e.EntityID == entityID
	}, limit, offset), nil
}

// ListByCompany entradas de la empresa, más reciente primero.
func (r *AuditRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.filter(func(e *entity.AuditEntry) bool { return e.CompanyID == companyID }, limit, offset), nil
}

func (r *AuditRepo) filter(keep func(*entity.AuditEntry) bool, limit, offset int) []*entity.AuditEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.AuditEntry
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if e := r.s.audits[i]; keep(e) {
			cp := *e
			list = append(list, &cp)
		}
	}
	return paginate(list, limit, offset)
}

type txAuditRepo struct{ tx *memTx }

func (r *txAuditRepo) Append(_ context.Context, entry *entity.AuditEntry) error {
	cp := *entry
	r.tx.audits = append(r.tx.audits, &cp)
	return nil
}

func (r *txAuditRepo) ListByEntity(ctx context.Context, companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return (&AuditRepo{s: r.tx.s}).ListByEntity(ctx, companyID, entityType, entityID, limit, offset)
}

func (r *txAuditRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return (&AuditRepo{s: r.tx.s}).ListByCompany(ctx, companyID, limit, offset)
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo directorio de usuarios en memoria.
type UserRepo struct{ s *Store }

// GetByID devuelve una copia del usuario o nil, nil.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// ListByCompany usuarios de la empresa ordenados por nombre.
func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID {
			cp := *u
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Upsert inserta o reemplaza el usuario.
func (r *UserRepo) Upsert(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

// ── Sedes ────────────────────────────────────────────────────────────────────

// FacilityRepo directorio de sedes en memoria.
type FacilityRepo struct{ s *Store }

// Create inserta una sede.
func (r *FacilityRepo) Create(_ context.Context, f *entity.Facility) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.facilities[f.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *f
	r.s.facilities[f.ID] = &cp
	return nil
}

// GetByID devuelve una copia de la sede o nil, nil.
func (r *FacilityRepo) GetByID(_ context.Context, id string) (*entity.Facility, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.facilities[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

// Update reemplaza la sede.
func (r *FacilityRepo) Update(_ context.Context, f *entity.Facility) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.facilities[f.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *f
	r.s.facilities[f.ID] = &cp
	return nil
}

// ListByCompany sedes de la empresa ordenadas por nombre.
func (r *FacilityRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Facility, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Facility
	for _, f := range r.s.facilities {
		if f.CompanyID == companyID {
			cp := *f
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Delete elimina la sede.
func (r *FacilityRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.facilities, id)
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
