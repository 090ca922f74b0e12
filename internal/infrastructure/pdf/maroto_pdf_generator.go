// Package pdf genera el reporte de movimientos de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte │ período                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA 1: Tipo | Movimientos | Cantidad total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA 2: Día | Movimientos | Entradas | Salidas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                │
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

	"github.com/jhoicas/gestion-stock-api/internal/application/analytics"
	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
)

var _ analytics.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementReport(
	_ context.Context,
	title string,
	stats *dto.MovementStatsResponse,
) ([]byte, error) {
	if stats == nil {
		return nil, fmt.Errorf("pdf: estadísticas vacías")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport des mouvements de stock", true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, stats.Period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Por tipo
	m.AddRows(sectionRow("Mouvements par type"))
	m.AddRows(tableHeaderRow("Type", "Mouvements", "Quantité totale"))
	if len(stats.MovementStats) == 0 {
		m.AddRows(emptyRow())
	}
	for _, s := range stats.MovementStats {
		m.AddRows(typeRow(s))
	}

	// Por día
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("Mouvements par jour"))
	m.AddRows(dailyHeaderRow())
	if len(stats.DailyStats) == 0 {
		m.AddRows(emptyRow())
	}
	for _, s := range stats.DailyStats {
		m.AddRows(dailyRow(s))
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		"Généré le "+g.now().Format("02/01/2006 15:04"),
		props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 1},
	))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, period dto.PeriodDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Rapport des mouvements de stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PÉRIODE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s - %s",
				period.StartDate.Format("02/01/2006"),
				period.EndDate.Format("02/01/2006"),
			), props.Text{Size: 9, Align: align.Right, Top: 8}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

func tableHeaderRow(a, b, c string) core.Row {
	h := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h(a, 4, align.Left),
		h(b, 4, align.Right),
		h(c, 4, align.Right),
	)
}

func typeRow(s dto.MovementTypeStatDTO) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(s.Type, props.Text{Size: 8, Left: 1})),
		col.New(4).Add(text.New(fmt.Sprintf("%d", s.Count), props.Text{Size: 8, Align: align.Right, Right: 1})),
		col.New(4).Add(text.New(s.TotalQuantity.String(), props.Text{Size: 8, Align: align.Right, Right: 1})),
	)
}

func dailyHeaderRow() core.Row {
	h := func(label string, al align.Type) core.Col {
		return col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Jour", align.Left),
		h("Mouvements", align.Right),
		h("Entrées", align.Right),
		h("Sorties", align.Right),
	)
}

func dailyRow(s dto.DailyStatDTO) core.Row {
	c := func(v string, al align.Type) core.Col {
		return col.New(3).Add(text.New(v, props.Text{Size: 8, Align: al, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		c(s.Date, align.Left),
		c(fmt.Sprintf("%d", s.Count), align.Right),
		c(s.Inbound.String(), align.Right),
		c(s.Outbound.String(), align.Right),
	)
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New("Aucun mouvement sur la période", props.Text{
		Size: 8, Style: fontstyle.Italic, Color: colorGray, Left: 1,
	})))
}
