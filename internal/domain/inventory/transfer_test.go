package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/inventory"
)

func newPart(qty int, stock ...entity.FacilityStock) *entity.SparePart {
	return &entity.SparePart{ID: "P1", CompanyID: "C1", Name: "Filtro", Quantity: qty, FacilityStock: stock}
}

func TestApplyTransfer_PrimeraSedeAgregaEntrada(t *testing.T) {
	part := newPart(20)

	require.NoError(t, inventory.ApplyTransfer(part, 5, "F1", "Clinic A"))

	assert.Equal(t, 15, part.Quantity)
	assert.Equal(t, []entity.FacilityStock{{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 5}}, part.FacilityStock)
	assert.Equal(t, 20, part.TotalQuantity())
}

func TestApplyTransfer_MismaSedeAcumula(t *testing.T) {
	part := newPart(15, entity.FacilityStock{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 5})

	require.NoError(t, inventory.ApplyTransfer(part, 3, "F1", "Clinic A"))

	assert.Equal(t, 12, part.Quantity)
	require.Len(t, part.FacilityStock, 1)
	assert.Equal(t, 8, part.FacilityStock[0].Quantity)
}

func TestApplyTransfer_IdentidadPorIDNoPorNombre(t *testing.T) {
	part := newPart(10, entity.FacilityStock{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 1})

	// Sede renombrada en el directorio: sigue siendo la misma entrada y el nombre es pegajoso.
	require.NoError(t, inventory.ApplyTransfer(part, 2, "F1", "Clinic A (Norte)"))
	// Otra sede con el mismo nombre pero distinto ID: entrada nueva.
	require.NoError(t, inventory.ApplyTransfer(part, 1, "F2", "Clinic A"))

	require.Len(t, part.FacilityStock, 2)
	assert.Equal(t, entity.FacilityStock{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 3}, part.FacilityStock[0])
	assert.Equal(t, entity.FacilityStock{FacilityID: "F2", FacilityName: "Clinic A", Quantity: 1}, part.FacilityStock[1])
	assert.Equal(t, 11, part.TotalQuantity())
}

func TestApplyTransfer_StockInsuficienteNoModifica(t *testing.T) {
	part := newPart(20)

	err := inventory.ApplyTransfer(part, 25, "F1", "Clinic A")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 20, ise.Available)
	assert.Equal(t, 25, ise.Requested)
	assert.Contains(t, err.Error(), "disponible 20")
	assert.Contains(t, err.Error(), "solicitado 25")
	assert.Equal(t, 20, part.Quantity)
	assert.Empty(t, part.FacilityStock)
}

func TestApplyTransfer_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name       string
		qty        int
		facilityID string
		facility   string
	}{
		{"cantidad cero", 0, "F1", "Clinic A"},
		{"cantidad negativa", -3, "F1", "Clinic A"},
		{"sin sede", 1, "", "Clinic A"},
		{"sin nombre de sede", 1, "F1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			part := newPart(10)
			err := inventory.ApplyTransfer(part, tc.qty, tc.facilityID, tc.facility)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 10, part.Quantity)
		})
	}
}

func TestApplyTransfer_TodoElStockCentral(t *testing.T) {
	part := newPart(7)

	require.NoError(t, inventory.ApplyTransfer(part, 7, "F1", "Clinic A"))

	assert.Equal(t, 0, part.Quantity)
	assert.Equal(t, 7, part.FacilityStock[0].Quantity)
}

func TestApplyReturn(t *testing.T) {
	part := newPart(12, entity.FacilityStock{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 8})

	name, err := inventory.ApplyReturn(part, 8, "F1")

	require.NoError(t, err)
	assert.Equal(t, "Clinic A", name)
	assert.Equal(t, 20, part.Quantity)
	require.Len(t, part.FacilityStock, 1, "la entrada de la sede se conserva en cero")
	assert.Equal(t, 0, part.FacilityStock[0].Quantity)
}

func TestApplyReturn_Errores(t *testing.T) {
	part := newPart(12, entity.FacilityStock{FacilityID: "F1", FacilityName: "Clinic A", Quantity: 2})

	_, err := inventory.ApplyReturn(part, 1, "F9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = inventory.ApplyReturn(part, 3, "F1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.ApplyReturn(part, 0, "F1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 12, part.Quantity)
	assert.Equal(t, 2, part.FacilityStock[0].Quantity)
}
