// Package pdf genera la versión imprimible del informe diario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe diario + vendedor  │  Fecha + estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Cliente | Contenido de la visita             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROBLEMA / PLAN                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMENTARIOS: autor, fecha y texto                          │
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

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[entity.ReportStatus]string{
	entity.ReportStatusDraft:     "BORRADOR",
	entity.ReportStatusSubmitted: "ENVIADO",
	entity.ReportStatusReviewed:  "REVISADO",
}

// ReportPDFGenerator genera el PDF de un informe con Maroto v2.
type ReportPDFGenerator struct{}

// NewReportPDFGenerator construye el generador.
func NewReportPDFGenerator() *ReportPDFGenerator { return &ReportPDFGenerator{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) GenerateReportPDF(_ context.Context, report *entity.Report, comments []*entity.Comment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe diario "+report.ReportDate.Format("2006-01-02"), true).
		WithAuthor(report.SalesPersonName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("VISITAS"))
	m.AddRows(visitHeaderRow())
	if len(report.VisitRecords) == 0 {
		m.AddAutoRow(text.NewCol(12, "Sin visitas registradas.", props.Text{Size: 8, Color: colorGray, Top: 1}))
	}
	for _, v := range report.VisitRecords {
		m.AddAutoRow(
			text.NewCol(2, nonEmpty(v.VisitTime, "-"), props.Text{Size: 8, Align: align.Center, Top: 1}),
			text.NewCol(3, nonEmpty(v.CustomerName, fmt.Sprintf("#%d", v.CustomerID)), props.Text{Size: 8, Top: 1}),
			text.NewCol(7, v.Content, props.Text{Size: 8, Top: 1, Bottom: 1}),
		)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("PROBLEMA"))
	m.AddAutoRow(text.NewCol(12, nonEmpty(report.Problem, "-"), props.Text{Size: 9, Bottom: 2}))
	m.AddRows(sectionTitle("PLAN"))
	m.AddAutoRow(text.NewCol(12, nonEmpty(report.Plan, "-"), props.Text{Size: 9, Bottom: 2}))

	if len(comments) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("COMENTARIOS"))
		for _, c := range comments {
			m.AddAutoRow(text.NewCol(12,
				fmt.Sprintf("%s · %s", c.AuthorName, c.CreatedAt.Format("02/01/2006 15:04")),
				props.Text{Size: 8, Style: fontstyle.Bold, Color: colorGray, Top: 1}))
			m.AddAutoRow(text.NewCol(12, c.Content, props.Text{Size: 9, Bottom: 2}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + vendedor (izq) y fecha + estado (der).
func headerRow(report *entity.Report) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INFORME DIARIO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(report.SalesPersonName, fmt.Sprintf("Vendedor #%d", report.SalesPersonID)), props.Text{
				Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+report.ReportDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[report.Status], string(report.Status)), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
	})))
}

// visitHeaderRow: cabecera de la tabla de visitas con fondo azul.
func visitHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 2, align.Center),
		h("Cliente", 3, align.Left),
		h("Contenido", 7, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
