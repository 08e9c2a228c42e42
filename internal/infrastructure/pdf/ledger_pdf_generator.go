// Package pdf genera el reporte PDF del libro de traslados de un repuesto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Repuesto + N° de parte  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDOS: Bodega central + una línea por sede                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Origen | Destino | Cant | Responsable        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de movimientos                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

var _ inventory.LedgerPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateTimeLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.LedgerPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLedgerPDF(_ context.Context, report inventory.LedgerReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Libro de traslados "+report.PartName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(stockRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableEntryRows(report.Entries)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r inventory.LedgerReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.PartName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N° de parte: "+nonEmpty(r.PartNumber, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("LIBRO DE TRASLADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format(dateTimeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// stockRows saldos actuales; si el repuesto fue dado de baja solo se indica.
func stockRows(r inventory.LedgerReport) []core.Row {
	if r.PartDeleted {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Repuesto dado de baja: se muestran solo los movimientos registrados.", props.Text{
				Style: fontstyle.Italic, Size: 8, Color: colorRed, Top: 2,
			}),
		))}
	}
	rows := []core.Row{
		row.New(7).Add(
			col.New(9).Add(text.New(entity.CentralWarehouseLabel, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", r.CentralQuantity), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			})),
		),
	}
	for _, fs := range r.FacilityStock {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(fs.FacilityName, props.Text{Size: 8, Top: 1, Left: 3})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", fs.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Origen", 3, align.Left),
		h("Destino", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Responsable", 3, align.Left),
	)
}

func tableEntryRows(entries []*entity.TransferLogEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, e := range entries {
		result = append(result, row.New(7).Add(
			cell(e.Timestamp.Format(dateTimeLayout), 2, align.Left),
			cell(e.FromLocation, 3, align.Left),
			cell(e.ToFacilityName, 3, align.Left),
			cell(fmt.Sprintf("%d", e.Quantity), 1, align.Right),
			cell(e.TransferredBy, 3, align.Left),
		))
	}
	return result
}

func footerRow(r inventory.LedgerReport) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Movimientos: %d", len(r.Entries)), props.Text{
			Size: 8, Color: colorGray, Align: align.Right, Top: 2,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
