// Package pdf implementa la generación del reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | S.Inicial | Entradas | Salidas | Stock    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: suma de entradas / salidas / stock                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.StockReportPDFGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa reports.StockReportPDFGenerator usando Maroto v2.
type MarotoStockReportGenerator struct{}

// NewMarotoStockReportGenerator construye el generador.
func NewMarotoStockReportGenerator() *MarotoStockReportGenerator {
	return &MarotoStockReportGenerator{}
}

// GenerateStockReportPDF genera el PDF del reporte de stock y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	rows []dto.StockReportRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de productos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("S. Inicial", headerRight)),
		col.New(2).Add(text.New("Entradas", headerRight)),
		col.New(2).Add(text.New("Salidas", headerRight)),
		col.New(2).Add(text.New("Stock", headerRight)),
	)
}

func tableDetailRow(r dto.StockReportRow) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(4).Add(text.New(r.ProductName, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.InitialBalance), cellRight)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.TotalIn), cellRight)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.TotalOut), cellRight)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.CurrentStock), cellRight)),
	)
}

func totalsRow(rows []dto.StockReportRow) core.Row {
	var totalIn, totalOut, totalStock int64
	for _, r := range rows {
		totalIn += r.TotalIn
		totalOut += r.TotalOut
		totalStock += r.CurrentStock
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("TOTALES", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(2),
		col.New(2).Add(text.New(fmt.Sprintf("%d", totalIn), bold)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", totalOut), bold)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", totalStock), bold)),
	)
}
