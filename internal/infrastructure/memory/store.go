// Package memory implementa los puertos de persistencia en memoria con control de
// concurrencia optimista. Se usa en tests y con STORE_DRIVER=memory.
//
// Cada transacción trabaja sobre copias; las escrituras quedan en espera y se aplican en
// Commit bajo el mutex del almacén solo si ninguna versión leída o escrita cambió entretanto.
// Si cambió, Commit devuelve domain.ErrConflict y no aplica nada.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store almacén en memoria compartido por los repositorios.
type Store struct {
	mu         sync.RWMutex
	parts      map[string]*entity.SparePart
	ledger     []*entity.TransferLogEntry
	audits     []*entity.AuditEntry
	users      map[string]*entity.User
	facilities map[string]*entity.Facility

	hookMu       sync.Mutex
	beforeCommit func()
	commitErrs   []error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		parts:      make(map[string]*entity.SparePart),
		users:      make(map[string]*entity.User),
		facilities: make(map[string]*entity.Facility),
	}
}

// SetBeforeCommit registra una función llamada justo antes de validar cada commit.
// Permite a los tests forzar el entrelazado de transacciones concurrentes.
func (s *Store) SetBeforeCommit(fn func()) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.beforeCommit = fn
}

// FailNextCommits hace que los próximos commits fallen, en orden, con los errores dados.
func (s *Store) FailNextCommits(errs ...error) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.commitErrs = append(s.commitErrs, errs...)
}

// Run ejecuta fn con repositorios atados a una transacción nueva y la confirma si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	partRepo repository.SparePartRepository,
	ledgerRepo repository.TransferLogRepository,
	auditRepo repository.AuditRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := newTx(s)
	if err := fn(&txSparePartRepo{tx: tx}, &txTransferLogRepo{tx: tx}, &txAuditRepo{tx: tx}); err != nil {
		return err
	}
	return s.commit(ctx, tx)
}

func (s *Store) commit(ctx context.Context, tx *memTx) error {
	s.hookMu.Lock()
	hook := s.beforeCommit
	var injected error
	if len(s.commitErrs) > 0 {
		injected = s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
	}
	s.hookMu.Unlock()

	if hook != nil {
		hook()
	}
	if injected != nil {
		return injected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, v := range tx.readVersions {
		if cur, ok := s.parts[id]; !ok || cur.Version != v {
			return fmt.Errorf("commit: repuesto %s modificado concurrentemente: %w", id, domain.ErrConflict)
		}
	}
	for id, w := range tx.writes {
		cur, ok := s.parts[id]
		if !ok || cur.Version != w.expected {
			return fmt.Errorf("commit: repuesto %s modificado concurrentemente: %w", id, domain.ErrConflict)
		}
	}
	for _, p := range tx.created {
		if _, ok := s.parts[p.ID]; ok {
			return domain.ErrDuplicate
		}
	}

	for _, p := range tx.created {
		s.parts[p.ID] = p.Clone()
	}
	for id, w := range tx.writes {
		s.parts[id] = w.part.Clone()
	}
	s.ledger = append(s.ledger, tx.ledger...)
	s.audits = append(s.audits, tx.audits...)
	return nil
}

// SpareParts repositorio de repuestos fuera de transacción.
func (s *Store) SpareParts() *SparePartRepo { return &SparePartRepo{s: s} }

// TransferLog repositorio del libro fuera de transacción.
func (s *Store) TransferLog() *TransferLogRepo { return &TransferLogRepo{s: s} }

// Audit repositorio de auditoría fuera de transacción.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// Users repositorio del directorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Facilities repositorio del directorio de sedes.
func (s *Store) Facilities() *FacilityRepo { return &FacilityRepo{s: s} }

type stagedWrite struct {
	expected int64
	part     *entity.SparePart
}

type memTx struct {
	s            *Store
	readVersions map[string]int64
	writes       map[string]stagedWrite
	created      []*entity.SparePart
	ledger       []*entity.TransferLogEntry
	audits       []*entity.AuditEntry
}

func newTx(s *Store) *memTx {
	return &memTx{
		s:            s,
		readVersions: make(map[string]int64),
		writes:       make(map[string]stagedWrite),
	}
}
