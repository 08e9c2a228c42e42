package entity

import "time"

// CentralWarehouseLabel etiqueta fija del origen/destino central en el libro de traslados.
const CentralWarehouseLabel = "Central Warehouse"

// Direcciones de traslado.
const (
	DirectionToFacility = "TO_FACILITY" // central -> sede
	DirectionToCentral  = "TO_CENTRAL"  // sede -> central (corrección / devolución)
)

// TransferLogEntry registro inmutable de un traslado confirmado.
// Los datos del repuesto, la sede y el usuario se copian al momento del traslado
// para que el registro siga siendo legible si luego se renombran o eliminan.
type TransferLogEntry struct {
	ID              string
	CompanyID       string
	PartID          string
	PartName        string
	PartNumber      string
	Quantity        int
	Direction       string
	FromLocation    string
	FromFacilityID  string // solo en TO_CENTRAL
	ToFacilityID    string // vacío en TO_CENTRAL
	ToFacilityName  string
	TransferredByID string
	TransferredBy   string
	Timestamp       time.Time
}
