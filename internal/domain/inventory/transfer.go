package inventory

import (
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// ApplyTransfer mueve qty del saldo central a la sede facilityID (servicio de dominio puro).
// Si la sede ya existe en FacilityStock incrementa su saldo en sitio; si no, agrega una entrada
// nueva al final con facilityName. La identidad de la sede es facilityID, nunca el nombre:
// el nombre almacenado no se sobrescribe en traslados posteriores.
// No modifica part si devuelve error.
func ApplyTransfer(part *entity.SparePart, qty int, facilityID, facilityName string) error {
	if qty < 1 || facilityID == "" || facilityName == "" {
		return domain.ErrInvalidInput
	}
	if part.Quantity < qty {
		return &domain.InsufficientStockError{Available: part.Quantity, Requested: qty}
	}
	part.Quantity -= qty
	if i := part.FacilityIndex(facilityID); i >= 0 {
		part.FacilityStock[i].Quantity += qty
		return nil
	}
	part.FacilityStock = append(part.FacilityStock, entity.FacilityStock{
		FacilityID:   facilityID,
		FacilityName: facilityName,
		Quantity:     qty,
	})
	return nil
}

// ApplyReturn mueve qty desde la sede facilityID de vuelta al saldo central.
// La sede debe existir; su entrada se conserva aunque quede en cero.
// Devuelve el nombre almacenado de la sede para el libro de traslados.
func ApplyReturn(part *entity.SparePart, qty int, facilityID string) (string, error) {
	if qty < 1 || facilityID == "" {
		return "", domain.ErrInvalidInput
	}
	i := part.FacilityIndex(facilityID)
	if i < 0 {
		return "", domain.ErrNotFound
	}
	fs := &part.FacilityStock[i]
	if fs.Quantity < qty {
		return "", &domain.InsufficientStockError{Available: fs.Quantity, Requested: qty}
	}
	fs.Quantity -= qty
	part.Quantity += qty
	return fs.FacilityName, nil
}
