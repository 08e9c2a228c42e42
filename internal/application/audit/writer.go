package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// Input datos de una entrada de auditoría antes de resolver el actor.
type Input struct {
	ActingUserID string
	Action       string
	EntityType   string
	EntityID     string
	EntityName   string
	CompanyID    string
}

// Writer escribe la bitácora de auditoría. Toda mutación debe ser atribuible:
// si el actor no se puede resolver la operación completa falla con domain.ErrUnauthorized.
type Writer struct {
	users ports.UserDirectory
	repo  repository.AuditRepository
	now   func() time.Time
}

// NewWriter construye el escritor. repo es el repositorio fuera de transacción usado por Record.
func NewWriter(users ports.UserDirectory, repo repository.AuditRepository) *Writer {
	return &Writer{users: users, repo: repo, now: time.Now}
}

// ResolveActor valida que el usuario exista, esté activo y pertenezca a la empresa.
func (w *Writer) ResolveActor(ctx context.Context, userID, companyID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := w.users.ResolveUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver usuario: %w", err)
	}
	if user == nil || !user.IsActive() || user.CompanyID != companyID {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Record resuelve el actor y agrega la entrada con el repositorio propio (sin transacción).
func (w *Writer) Record(ctx context.Context, in Input) (*entity.AuditEntry, error) {
	return w.RecordInTx(ctx, w.repo, in)
}

// RecordInTx igual que Record pero escribe con repo, normalmente atado a la transacción
// del caller para que la auditoría se confirme o descarte junto con la mutación.
func (w *Writer) RecordInTx(ctx context.Context, repo repository.AuditRepository, in Input) (*entity.AuditEntry, error) {
	actor, err := w.ResolveActor(ctx, in.ActingUserID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	return w.RecordForActor(ctx, repo, actor, in)
}

// RecordForActor agrega la entrada para un actor ya resuelto con ResolveActor.
func (w *Writer) RecordForActor(ctx context.Context, repo repository.AuditRepository, actor *entity.User, in Input) (*entity.AuditEntry, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	switch in.Action {
	case entity.AuditActionCreate, entity.AuditActionUpdate, entity.AuditActionDelete:
	default:
		return nil, domain.ErrInvalidInput
	}
	entry := &entity.AuditEntry{
		ID:         uuid.New().String(),
		User:       entity.AuditUser{ID: actor.ID, Name: actor.Name},
		Action:     in.Action,
		Entity:     in.EntityType,
		EntityID:   in.EntityID,
		EntityName: in.EntityName,
		CompanyID:  in.CompanyID,
		Timestamp:  w.now(),
	}
	if err := repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("registrar auditoría: %w", err)
	}
	return entry, nil
}

// ListByEntity historial de auditoría de una entidad dentro de la empresa.
func (w *Writer) ListByEntity(ctx context.Context, companyID, entityType, entityID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return w.repo.ListByEntity(ctx, companyID, entityType, entityID, limit, offset)
}

// ListByCompany historial de auditoría de la empresa, más reciente primero.
func (w *Writer) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return w.repo.ListByCompany(ctx, companyID, limit, offset)
}
