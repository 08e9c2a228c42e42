package dto

import (
	"time"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// CreateSparePartRequest entrada para registrar un repuesto con su stock central inicial.
type CreateSparePartRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	PartNumber string `json:"part_number"`
	AssetModel string `json:"asset_model"`
	Quantity   int    `json:"quantity" validate:"min=0"`
}

// FacilityStockResponse saldo por sede.
type FacilityStockResponse struct {
	FacilityID   string `json:"facility_id"`
	FacilityName string `json:"facility_name"`
	Quantity     int    `json:"quantity"`
}

// SparePartResponse salida de un repuesto.
type SparePartResponse struct {
	ID            string                  `json:"id"`
	CompanyID     string                  `json:"company_id"`
	Name          string                  `json:"name"`
	PartNumber    string                  `json:"part_number"`
	AssetModel    string                  `json:"asset_model"`
	Quantity      int                     `json:"quantity"`
	FacilityStock []FacilityStockResponse `json:"facility_stock"`
	TotalQuantity int                     `json:"total_quantity"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// SparePartListResponse lista paginada de repuestos.
type SparePartListResponse struct {
	Items []SparePartResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ToSparePartResponse convierte la entidad al DTO de salida.
func ToSparePartResponse(p *entity.SparePart) *SparePartResponse {
	if p == nil {
		return nil
	}
	stock := make([]FacilityStockResponse, 0, len(p.FacilityStock))
	for _, fs := range p.FacilityStock {
		stock = append(stock, FacilityStockResponse{
			FacilityID:   fs.FacilityID,
			FacilityName: fs.FacilityName,
			Quantity:     fs.Quantity,
		})
	}
	return &SparePartResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		Name:          p.Name,
		PartNumber:    p.PartNumber,
		AssetModel:    p.AssetModel,
		Quantity:      p.Quantity,
		FacilityStock: stock,
		TotalQuantity: p.TotalQuantity(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
