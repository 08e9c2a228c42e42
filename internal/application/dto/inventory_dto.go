package dto

import (
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// TransferRequest body para POST /api/spare-parts/:id/transfers.
// to_facility_name es opcional si la sede existe en el directorio de sedes.
type TransferRequest struct {
	Quantity       int    `json:"quantity"`
	ToFacilityID   string `json:"to_facility_id"`
	ToFacilityName string `json:"to_facility_name,omitempty"`
}

// ReturnRequest body para POST /api/spare-parts/:id/returns.
type ReturnRequest struct {
	Quantity       int    `json:"quantity"`
	FromFacilityID string `json:"from_facility_id"`
}

// TransferLogEntryResponse entrada del libro de traslados.
type TransferLogEntryResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	PartID          string    `json:"part_id"`
	PartName        string    `json:"part_name"`
	PartNumber      string    `json:"part_number"`
	Quantity        int       `json:"quantity"`
	Direction       string    `json:"direction"`
	FromLocation    string    `json:"from_location"`
	FromFacilityID  string    `json:"from_facility_id,omitempty"`
	ToFacilityID    string    `json:"to_facility_id,omitempty"`
	ToFacilityName  string    `json:"to_facility_name"`
	TransferredByID string    `json:"transferred_by_id"`
	TransferredBy   string    `json:"transferred_by"`
	Timestamp       time.Time `json:"timestamp"`
}

// TransferLogListResponse lista paginada del libro de traslados.
type TransferLogListResponse struct {
	Items []TransferLogEntryResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// ToTransferLogEntryResponse convierte la entidad al DTO de salida.
func ToTransferLogEntryResponse(e *entity.TransferLogEntry) *TransferLogEntryResponse {
	if e == nil {
		return nil
	}
	return &TransferLogEntryResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		PartID:          e.PartID,
		PartName:        e.PartName,
		PartNumber:      e.PartNumber,
		Quantity:        e.Quantity,
		Direction:       e.Direction,
		FromLocation:    e.FromLocation,
		FromFacilityID:  e.FromFacilityID,
		ToFacilityID:    e.ToFacilityID,
		ToFacilityName:  e.ToFacilityName,
		TransferredByID: e.TransferredByID,
		TransferredBy:   e.TransferredBy,
		Timestamp:       e.Timestamp,
	}
}
