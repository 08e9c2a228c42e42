package entity

import "time"

// SparePart representa un repuesto con su saldo en bodega central y saldos por sede.
// Quantity es el stock central aún no asignado a ninguna sede.
type SparePart struct {
	ID            string
	CompanyID     string
	Name          string
	PartNumber    string
	AssetModel    string
	Quantity      int
	FacilityStock []FacilityStock // orden de inserción, único por FacilityID
	Version       int64           // token de concurrencia optimista
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FacilityStock saldo del repuesto en una sede de campo.
type FacilityStock struct {
	FacilityID   string
	FacilityName string
	Quantity     int
}

// TotalQuantity suma central + sedes. Se conserva en cualquier traslado.
func (p *SparePart) TotalQuantity() int {
	total := p.Quantity
	for _, fs := range p.FacilityStock {
		total += fs.Quantity
	}
	return total
}

// FacilityIndex devuelve la posición de la sede en FacilityStock o -1.
func (p *SparePart) FacilityIndex(facilityID string) int {
	for i, fs := range p.FacilityStock {
		if fs.FacilityID == facilityID {
			return i
		}
	}
	return -1
}

// Clone copia profunda (el slice de sedes no se comparte).
func (p *SparePart) Clone() *SparePart {
	if p == nil {
		return nil
	}
	c := *p
	c.FacilityStock = append([]FacilityStock(nil), p.FacilityStock...)
	return &c
}
