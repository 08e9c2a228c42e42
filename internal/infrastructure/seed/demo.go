// Package seed carga datos de demostración: una empresa con un usuario por rol,
// una sede registrada y un repuesto con stock central.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// IDs fijos para que la carga sea idempotente.
const (
	DemoCompanyID     = "6f1c2a3e-0000-4000-8000-000000000001"
	DemoAdminID       = "6f1c2a3e-0000-4000-8000-000000000010"
	DemoStorekeeperID = "6f1c2a3e-0000-4000-8000-000000000011"
	DemoTechnicianID  = "6f1c2a3e-0000-4000-8000-000000000012"
	DemoFacilityID    = "6f1c2a3e-0000-4000-8000-000000000020"
	DemoPartID        = "6f1c2a3e-0000-4000-8000-000000000030"
)

// Repos destino de la carga.
type Repos struct {
	Users      repository.UserRepository
	Facilities repository.FacilityRepository
	Parts      repository.SparePartRepository
}

// Result lo que quedó cargado.
type Result struct {
	Users      []*entity.User
	FacilityID string
	PartID     string
}

// Demo inserta los datos de demostración. Los usuarios se actualizan siempre; sede y
// repuesto solo se crean si no existen, así una segunda ejecución no pisa saldos.
func Demo(ctx context.Context, r Repos) (*Result, error) {
	now := time.Now().UTC()
	users := []*entity.User{
		{ID: DemoAdminID, Email: "admin@demo.local", Name: "Administrador Demo", Role: entity.RoleAdmin},
		{ID: DemoStorekeeperID, Email: "bodega@demo.local", Name: "Almacenista Demo", Role: entity.RoleStorekeeper},
		{ID: DemoTechnicianID, Email: "tecnico@demo.local", Name: "Técnico Demo", Role: entity.RoleTechnician},
	}
	for _, u := range users {
		u.CompanyID = DemoCompanyID
		u.Status = entity.UserStatusActive
		u.CreatedAt, u.UpdatedAt = now, now
		if err := r.Users.Upsert(ctx, u); err != nil {
			return nil, fmt.Errorf("seed usuario %s: %w", u.Email, err)
		}
	}

	f, err := r.Facilities.GetByID(ctx, DemoFacilityID)
	if err != nil {
		return nil, fmt.Errorf("seed sede: %w", err)
	}
	if f == nil {
		if err := r.Facilities.Create(ctx, &entity.Facility{
			ID: DemoFacilityID, CompanyID: DemoCompanyID, Name: "Clínica Norte", Address: "Av. Principal 123",
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("seed sede: %w", err)
		}
	}

	p, err := r.Parts.GetByID(ctx, DemoPartID)
	if err != nil {
		return nil, fmt.Errorf("seed repuesto: %w", err)
	}
	if p == nil {
		if err := r.Parts.Create(ctx, &entity.SparePart{
			ID: DemoPartID, CompanyID: DemoCompanyID, Name: "Filtro HEPA", PartNumber: "HF-100",
			AssetModel: "Ventilador V60", Quantity: 50, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("seed repuesto: %w", err)
		}
	}

	return &Result{Users: users, FacilityID: DemoFacilityID, PartID: DemoPartID}, nil
}
