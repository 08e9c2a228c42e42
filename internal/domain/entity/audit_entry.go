package entity

import "time"

// Acciones registradas en la bitácora de auditoría.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Tipos de entidad auditados por este servicio.
const (
	EntitySparePart = "SparePart"
	EntityFacility  = "Facility"
)

// AuditUser identidad del actor copiada en la entrada.
type AuditUser struct {
	ID   string
	Name string
}

// AuditEntry quién hizo qué, sobre qué entidad y cuándo.
type AuditEntry struct {
	ID         string
	User       AuditUser
	Action     string
	Entity     string
	EntityID   string
	EntityName string
	CompanyID  string
	Timestamp  time.Time
}
