package dto

import (
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// AuditEntryResponse entrada de auditoría.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	CompanyID  string    `json:"company_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuditListResponse lista paginada de auditoría.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ToAuditEntryResponse convierte la entidad al DTO de salida.
func ToAuditEntryResponse(e *entity.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID,
		UserID:     e.User.ID,
		UserName:   e.User.Name,
		Action:     e.Action,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		EntityName: e.EntityName,
		CompanyID:  e.CompanyID,
		Timestamp:  e.Timestamp,
	}
}
