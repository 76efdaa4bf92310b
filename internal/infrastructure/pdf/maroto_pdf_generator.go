// Package pdf implementa la representación gráfica del albarán con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ALBARÁN  │  N° + Tipo (horas/materiales)           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Usuario / Cliente / Proyecto                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Cantidad | Unidad | Descripción           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMADO (solo si signed=true)                               │
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

	"github.com/jhoicas/albaranes-api/internal/application/deliverynote"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 128, Blue: 64}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ deliverynote.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa deliverynote.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateNotePDF genera el PDF del albarán y devuelve sus bytes. Solo lectura.
func (g *MarotoPDFGenerator) GenerateNotePDF(_ context.Context, data deliverynote.NotePDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Albarán "+data.NoteID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, e := range data.Entries {
		m.AddRows(entryRow(e))
	}

	if data.Signed {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(signedRow())
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título ALBARÁN (izq) y número + tipo (der).
func headerRow(data deliverynote.NotePDFData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ALBARÁN", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("N° "+data.NoteID, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New("Tipo: "+data.Type, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// partiesRow: usuario, cliente y proyecto.
func partiesRow(data deliverynote.NotePDFData) core.Row {
	return row.New(16).Add(
		col.New(4).Add(
			text.New("Usuario", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(data.UserName, props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("Cliente", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(data.ClientName, props.Text{Size: 9, Top: 6}),
		),
		col.New(4).Add(
			text.New("Proyecto", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(data.ProjectName, props.Text{Size: 9, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(4).Add(text.New("Concepto", header)),
		col.New(2).Add(text.New("Cantidad", header)),
		col.New(2).Add(text.New("Unidad", header)),
		col.New(4).Add(text.New("Descripción", header)),
	)
}

func entryRow(e deliverynote.PDFEntry) core.Row {
	cell := props.Text{Size: 9, Top: 1}
	return row.New(6).Add(
		col.New(4).Add(text.New(e.Name, cell)),
		col.New(2).Add(text.New(e.Quantity, cell)),
		col.New(2).Add(text.New(e.Unit, cell)),
		col.New(4).Add(text.New(e.Description, cell)),
	)
}

// signedRow: marca FIRMADO, solo presente cuando signed=true.
func signedRow() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("FIRMADO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorGreen, Top: 2,
			}),
		),
	)
}
