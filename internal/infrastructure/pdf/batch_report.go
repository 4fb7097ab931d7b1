// Package pdf genera el reporte PDF de un lote procesado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + ID de lote │  Fecha + operador            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: entradas / generados / sin cruce / mal formados    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Factura | NIT | Plan | Tipo | Valor a pagar      │
//	│  TOTAL A PAGAR                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OMITIDOS: entrada + motivo                                  │
//	│  CORRECCIONES: regla + coincidencias                         │
//	│  FOOTER: QR con el ID del lote + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BatchReportGenerator genera el reporte de lote con Maroto v2.
type BatchReportGenerator struct{}

// NewBatchReportGenerator construye el generador.
func NewBatchReportGenerator() *BatchReportGenerator { return &BatchReportGenerator{} }

// BatchReport genera el PDF y devuelve sus bytes.
func (g *BatchReportGenerator) BatchReport(_ context.Context, batch *entity.Batch) ([]byte, error) {
	if batch == nil {
		return nil, fmt.Errorf("pdf: lote nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de lote de facturas corregidas", true).
		WithAuthor(nonEmpty(batch.CreatedBy, "contenedor"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(batch.Files)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(batch))

	if rows := skippedRows(batch); len(rows) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(rows...)
	}
	if rows := correctionRows(batch.RuleMatches); len(rows) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(rows...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(batch))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(b *entity.Batch) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE LOTE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lote: "+b.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURAS DE CONTINGENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+b.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Operador: "+nonEmpty(b.CreatedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func summaryRow(b *entity.Batch) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Align: align.Center, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("ENTRADAS", b.Inputs),
		cell("GENERADOS", b.Processed()),
		cell("SIN REGISTRO", len(b.Unmatched)),
		cell("MAL FORMADOS", len(b.Malformed)),
	)
}

// tableHeaderRow cabecera de la tabla de archivos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Factura", 3, align.Left),
		h("NIT", 2, align.Left),
		h("Plan", 1, align.Center),
		h("Tipo", 2, align.Left),
		h("Valor a pagar", 3, align.Right),
	)
}

// tableDetailRows una fila por archivo generado.
func tableDetailRows(files []entity.ProcessedInvoice) []core.Row {
	result := make([]core.Row, 0, len(files))
	small := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	}
	for _, f := range files {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", f.Sequence), small(align.Center))),
			col.New(3).Add(text.New(f.Record.InvoiceNumber, small(align.Left))),
			col.New(2).Add(text.New(f.Record.NIT, small(align.Left))),
			col.New(1).Add(text.New(nonEmpty(f.Record.PlanCode, "—"), small(align.Center))),
			col.New(2).Add(text.New(strings.ToUpper(nonEmpty(f.Record.LineType, "—")), small(align.Left))),
			col.New(3).Add(text.New("$"+formatMoney(f.PayableAmount.StringFixed(0)), small(align.Right))),
		))
	}
	return result
}

func totalRow(b *entity.Batch) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(b.TotalPayable.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// skippedRows entradas sin registro o mal formadas, con su motivo.
func skippedRows(b *entity.Batch) []core.Row {
	if len(b.Unmatched)+len(b.Malformed) == 0 {
		return nil
	}
	rows := []core.Row{sectionTitle("DOCUMENTOS OMITIDOS")}
	add := func(list []entity.SkippedInput) {
		for _, s := range list {
			rows = append(rows, row.New(5).Add(
				col.New(5).Add(text.New(s.InputName, props.Text{Size: 7.5, Top: 0.5, Left: 2})),
				col.New(7).Add(text.New(s.Reason, props.Text{Size: 7.5, Top: 0.5, Color: colorGray})),
			))
		}
	}
	add(b.Unmatched)
	add(b.Malformed)
	return rows
}

func correctionRows(matches []entity.RuleMatchCount) []core.Row {
	if len(matches) == 0 {
		return nil
	}
	rows := []core.Row{sectionTitle("CORRECCIONES MANUALES")}
	for _, m := range matches {
		label := nonEmpty(m.Description, m.RuleID)
		for i, chunk := range splitEvery(label, 90) {
			count := ""
			if i == 0 {
				count = fmt.Sprintf("%d", m.Matches)
			}
			rows = append(rows, row.New(5).Add(
				col.New(10).Add(text.New(chunk, props.Text{Size: 7.5, Top: 0.5, Left: 2})),
				col.New(2).Add(text.New(count, props.Text{Size: 7.5, Top: 0.5, Align: align.Right, Right: 1})),
			))
		}
	}
	return rows
}

// footerRow QR con el ID del lote para ubicarlo en la API.
func footerRow(b *entity.Batch) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(b.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Los archivos de este lote conservan la numeración y los nombres listados.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Cada XML incluye su huella SHA-256 canónica en el resumen del lote.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
