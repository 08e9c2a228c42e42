package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/fieldservice-api/internal/domain/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

const publishTimeout = 5 * time.Second

// TransferConfig parámetros de reintento y tiempo máximo del motor de traslados.
type TransferConfig struct {
	MaxAttempts    int
	RetryBaseDelay time.Duration
	MaxRetryDelay  time.Duration
	Timeout        time.Duration // 0 = sin límite propio (solo el del ctx del caller)
}

// DefaultTransferConfig valores por defecto.
func DefaultTransferConfig() TransferConfig {
	return TransferConfig{
		MaxAttempts:    5,
		RetryBaseDelay: 25 * time.Millisecond,
		MaxRetryDelay:  time.Second,
		Timeout:        10 * time.Second,
	}
}

// TransferUseCase mueve stock entre la bodega central y las sedes de forma atómica:
// lectura, validación, escritura del repuesto, entrada en el libro y auditoría en una sola
// transacción. Ante conflicto de concurrencia repite el ciclo completo desde la lectura.
type TransferUseCase struct {
	txRunner  TxRunner
	auditor   *audit.Writer
	publisher EventPublisher
	cfg       TransferConfig
	now       func() time.Time
	pending   sync.WaitGroup // publicaciones en vuelo
}

// NewTransferUseCase construye el caso de uso. publisher puede ser nil.
func NewTransferUseCase(txRunner TxRunner, auditor *audit.Writer, publisher EventPublisher, cfg TransferConfig) *TransferUseCase {
	def := DefaultTransferConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = def.RetryBaseDelay
	}
	if cfg.MaxRetryDelay <= 0 {
		cfg.MaxRetryDelay = def.MaxRetryDelay
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &TransferUseCase{
		txRunner:  txRunner,
		auditor:   auditor,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// TransferInput traslado desde la bodega central hacia una sede.
type TransferInput struct {
	PartID         string
	Quantity       int
	ToFacilityID   string
	ToFacilityName string
	CompanyID      string
	ActingUserID   string
	ActingUserName string
}

// ReturnInput devolución desde una sede hacia la bodega central.
type ReturnInput struct {
	PartID         string
	Quantity       int
	FromFacilityID string
	CompanyID      string
	ActingUserID   string
	ActingUserName string
}

// Transfer ejecuta el traslado y devuelve la entrada del libro creada.
// Errores terminales: domain.ErrInvalidInput, domain.ErrUnauthorized, domain.ErrNotFound y
// *domain.InsufficientStockError. Conflictos y fallos transitorios se reintentan; al agotar
// los intentos se devuelve domain.ErrUnavailable.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.TransferLogEntry, error) {
	if in.ActingUserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.PartID == "" || in.CompanyID == "" || in.ToFacilityID == "" || in.ToFacilityName == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.TransferLogEntry
	err := uc.withRetry(ctx, "transfer", in.PartID, func(ctx context.Context) error {
		entry = nil
		// Actor fuera de la transacción: ninguna tx espera una segunda conexión del pool.
		actor, err := uc.auditor.ResolveActor(ctx, in.ActingUserID, in.CompanyID)
		if err != nil {
			return err
		}
		return uc.txRunner.Run(ctx, func(
			partRepo repository.SparePartRepository,
			ledgerRepo repository.TransferLogRepository,
			auditRepo repository.AuditRepository,
		) error {
			// Validación contra la lectura hecha dentro de la transacción, nunca contra una copia previa.
			part, err := uc.loadPart(ctx, partRepo, in.PartID, in.CompanyID)
			if err != nil {
				return err
			}
			if err := domaininv.ApplyTransfer(part, in.Quantity, in.ToFacilityID, in.ToFacilityName); err != nil {
				return err
			}
			part.UpdatedAt = uc.now()
			if err := partRepo.Update(ctx, part); err != nil {
				return err
			}
			e := &entity.TransferLogEntry{
				ID:              uuid.New().String(),
				CompanyID:       part.CompanyID,
				PartID:          part.ID,
				PartName:        part.Name,
				PartNumber:      part.PartNumber,
				Quantity:        in.Quantity,
				Direction:       entity.DirectionToFacility,
				FromLocation:    entity.CentralWarehouseLabel,
				ToFacilityID:    in.ToFacilityID,
				ToFacilityName:  in.ToFacilityName,
				TransferredByID: actor.ID,
				TransferredBy:   actorName(in.ActingUserName, actor),
				Timestamp:       uc.now(),
			}
			if err := ledgerRepo.Append(ctx, e); err != nil {
				return err
			}
			if _, err := uc.auditor.RecordForActor(ctx, auditRepo, actor, audit.Input{
				ActingUserID: actor.ID,
				Action:       entity.AuditActionUpdate,
				EntityType:   entity.EntitySparePart,
				EntityID:     part.ID,
				EntityName:   part.Name,
				CompanyID:    part.CompanyID,
			}); err != nil {
				return err
			}
			entry = e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, entry)
	return entry, nil
}

// ReturnToCentral devuelve stock de una sede a la bodega central. Es el traslado en sentido
// contrario con el que se corrige un traslado previo; el libro nunca se edita.
func (uc *TransferUseCase) ReturnToCentral(ctx context.Context, in ReturnInput) (*entity.TransferLogEntry, error) {
	if in.ActingUserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.PartID == "" || in.CompanyID == "" || in.FromFacilityID == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.TransferLogEntry
	err := uc.withRetry(ctx, "return", in.PartID, func(ctx context.Context) error {
		entry = nil
		// Actor fuera de la transacción: ninguna tx espera una segunda conexión del pool.
		actor, err := uc.auditor.ResolveActor(ctx, in.ActingUserID, in.CompanyID)
		if err != nil {
			return err
		}
		return uc.txRunner.Run(ctx, func(
			partRepo repository.SparePartRepository,
			ledgerRepo repository.TransferLogRepository,
			auditRepo repository.AuditRepository,
		) error {
			part, err := uc.loadPart(ctx, partRepo, in.PartID, in.CompanyID)
			if err != nil {
				return err
			}
			facilityName, err := domaininv.ApplyReturn(part, in.Quantity, in.FromFacilityID)
			if err != nil {
				return err
			}
			part.UpdatedAt = uc.now()
			if err := partRepo.Update(ctx, part); err != nil {
				return err
			}
			e := &entity.TransferLogEntry{
				ID:              uuid.New().String(),
				CompanyID:       part.CompanyID,
				PartID:          part.ID,
				PartName:        part.Name,
				PartNumber:      part.PartNumber,
				Quantity:        in.Quantity,
				Direction:       entity.DirectionToCentral,
				FromLocation:    facilityName,
				FromFacilityID:  in.FromFacilityID,
				ToFacilityName:  entity.CentralWarehouseLabel,
				TransferredByID: actor.ID,
				TransferredBy:   actorName(in.ActingUserName, actor),
				Timestamp:       uc.now(),
			}
			if err := ledgerRepo.Append(ctx, e); err != nil {
				return err
			}
			if _, err := uc.auditor.RecordForActor(ctx, auditRepo, actor, audit.Input{
				ActingUserID: actor.ID,
				Action:       entity.AuditActionUpdate,
				EntityType:   entity.EntitySparePart,
				EntityID:     part.ID,
				EntityName:   part.Name,
				CompanyID:    part.CompanyID,
			}); err != nil {
				return err
			}
			entry = e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, entry)
	return entry, nil
}

// loadPart lee el repuesto dentro de la transacción. Un repuesto de otra empresa se reporta
// como inexistente.
func (uc *TransferUseCase) loadPart(ctx context.Context, repo repository.SparePartRepository, partID, companyID string) (*entity.SparePart, error) {
	part, err := repo.GetForUpdate(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil || part.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// withRetry ejecuta attempt hasta MaxAttempts veces con backoff exponencial mientras el error
// sea reintentable. Cada intento es una transacción nueva: un intento abortado no deja rastro.
func (uc *TransferUseCase) withRetry(ctx context.Context, op, partID string, attempt func(ctx context.Context) error) error {
	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}

	var lastErr error
	for i := 1; i <= uc.cfg.MaxAttempts; i++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		// Los errores terminales llegan intactos aunque el ctx haya terminado durante el intento.
		if !domain.IsRetryable(err) && !isContextErr(err) {
			return err
		}
		if isContextErr(err) || ctx.Err() != nil {
			return fmt.Errorf("%w: %s cancelado o vencido: %w", domain.ErrUnavailable, op, err)
		}
		lastErr = err
		log.Warn().Err(err).
			Str("op", op).
			Str("part_id", partID).
			Int("attempt", i).
			Int("max_attempts", uc.cfg.MaxAttempts).
			Msg("traslado en conflicto, reintentando")
		if i == uc.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s cancelado durante reintento: %w", domain.ErrUnavailable, op, lastErr)
		case <-time.After(backoff(i, uc.cfg.RetryBaseDelay, uc.cfg.MaxRetryDelay)):
		}
	}
	return fmt.Errorf("%w: %s: %d intentos agotados: %w", domain.ErrUnavailable, op, uc.cfg.MaxAttempts, lastErr)
}

// publish envía el evento en segundo plano: la respuesta al caller no espera al broker.
func (uc *TransferUseCase) publish(ctx context.Context, entry *entity.TransferLogEntry) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		defer cancel()
		if err := uc.publisher.PublishTransfer(pubCtx, entry); err != nil {
			log.Error().Err(err).
				Str("transfer_id", entry.ID).
				Str("part_id", entry.PartID).
				Msg("publicar evento de traslado")
		}
	}()
}

// Wait bloquea hasta que terminen las publicaciones en vuelo. Se llama en el apagado,
// antes de cerrar el publisher.
func (uc *TransferUseCase) Wait() {
	uc.pending.Wait()
}

func actorName(given string, actor *entity.User) string {
	if given != "" {
		return given
	}
	return actor.Name
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
