package entity

import "time"

// Facility representa una sede de campo (clínica, planta, sitio) que recibe repuestos.
type Facility struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
