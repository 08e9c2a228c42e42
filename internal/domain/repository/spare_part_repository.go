package repository

import (
	"context"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// SparePartRepository define el puerto de persistencia para repuestos y sus saldos por sede.
// Las implementaciones pueden atarse a una transacción (ver inventory.TxRunner).
type SparePartRepository interface {
	Create(ctx context.Context, part *entity.SparePart) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.SparePart, error)
	// GetForUpdate lee el estado vigente dentro de la transacción (bloqueo de fila o
	// registro de versión leída, según el almacén). Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error)
	// Update escribe cantidad central y saldos por sede solo si part.Version coincide con
	// la versión almacenada; si no, devuelve domain.ErrConflict. Incrementa part.Version.
	Update(ctx context.Context, part *entity.SparePart) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.SparePart, error)
}
