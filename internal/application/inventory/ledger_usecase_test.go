package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

type capturingPDF struct {
	report inventory.LedgerReport
	calls  int
}

func (g *capturingPDF) GenerateLedgerPDF(_ context.Context, r inventory.LedgerReport) ([]byte, error) {
	g.report = r
	g.calls++
	return []byte("%PDF-1.4"), nil
}

func TestLedger_ListByPart(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()
	for _, qty := range []int{1, 2, 3} {
		_, err := f.uc.Transfer(ctx, transferIn(qty, "F1", "Clinic A"))
		require.NoError(t, err)
	}
	uc := inventory.NewLedgerUseCase(f.store.SpareParts(), f.store.TransferLog(), nil)

	resp, err := uc.ListByPart(ctx, testCompanyID, testPartID, 2, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.Items[0].Quantity, "más reciente primero")
	assert.Equal(t, 2, resp.Page.Limit)

	other, err := uc.ListByPart(ctx, "company-2", testPartID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestLedger_ListByCompanyRangoInvalido(t *testing.T) {
	f := newFixture(t, 20)
	uc := inventory.NewLedgerUseCase(f.store.SpareParts(), f.store.TransferLog(), nil)
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := uc.ListByCompany(context.Background(), testCompanyID, &from, &to, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_ExportPDF(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()
	_, err := f.uc.Transfer(ctx, transferIn(5, "F1", "Clinic A"))
	require.NoError(t, err)

	gen := &capturingPDF{}
	uc := inventory.NewLedgerUseCase(f.store.SpareParts(), f.store.TransferLog(), gen)

	out, err := uc.ExportPartLedgerPDF(ctx, testCompanyID, testPartID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "Filtro HEPA", gen.report.PartName)
	assert.Equal(t, 15, gen.report.CentralQuantity)
	assert.False(t, gen.report.PartDeleted)
	assert.Len(t, gen.report.Entries, 1)

	_, err = uc.ExportPartLedgerPDF(ctx, "company-2", testPartID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ExportPartLedgerPDF(ctx, testCompanyID, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_ExportPDFRepuestoEliminado(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()
	// Solo quedan las entradas del libro con la identidad copiada.
	require.NoError(t, f.store.TransferLog().Append(ctx, &entity.TransferLogEntry{
		ID: "t1", CompanyID: testCompanyID, PartID: "borrado", PartName: "Sensor O2", PartNumber: "SO-2",
		Quantity: 1, Direction: entity.DirectionToFacility, Timestamp: time.Now(),
	}))
	gen := &capturingPDF{}
	uc := inventory.NewLedgerUseCase(f.store.SpareParts(), f.store.TransferLog(), gen)

	_, err := uc.ExportPartLedgerPDF(ctx, testCompanyID, "borrado")
	require.NoError(t, err)
	assert.True(t, gen.report.PartDeleted)
	assert.Equal(t, "Sensor O2", gen.report.PartName)
	assert.Equal(t, "SO-2", gen.report.PartNumber)
}
