package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleStorekeeper = "storekeeper"
	RoleTechnician  = "technician"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario del directorio externo (pertenece a una Company).
// Este servicio solo lo lee para atribuir traslados y auditoría.
type User struct {
	ID        string
	CompanyID string
	Email     string
	Name      string
	Role      string // admin, storekeeper, technician
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive informa si el usuario puede actuar.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
