package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/pdf"
)

func TestGenerateLedgerPDF(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	report := inventory.LedgerReport{
		CompanyID: "c1", PartID: "p1", PartName: "Filtro HEPA", PartNumber: "HF-100",
		CentralQuantity: 15,
		FacilityStock:   []entity.FacilityStock{{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 5}},
		Entries: []*entity.TransferLogEntry{{
			ID: "t1", PartID: "p1", Quantity: 5, FromLocation: entity.CentralWarehouseLabel,
			ToFacilityName: "Clinic A", TransferredBy: "Ana", Timestamp: now,
		}},
		GeneratedAt: now,
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateLedgerPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")

	report.PartDeleted = true
	report.FacilityStock = nil
	out, err = pdf.NewMarotoPDFGenerator().GenerateLedgerPDF(context.Background(), report)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
