package dian

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// PlanCodeWidth ancho del código de plan de beneficios.
const PlanCodeWidth = 2

// PadPlanCode rellena con ceros a la izquierda hasta 2 caracteres ("3" → "03").
// Un código vacío sigue vacío.
func PadPlanCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if n := utf8.RuneCountInString(code); n < PlanCodeWidth {
		return strings.Repeat("0", PlanCodeWidth-n) + code
	}
	return code
}

// BuildFilename genera el nombre del XML de salida:
//
//	{seq}_CONTENEDOR({nit};{factura};{inicio};{fin};{plan};{ITEM}).xml
//
// Las fechas van tal cual vienen en la planilla (sin normalizar), aunque el XML
// lleve la versión YYYY-MM-DD.
func BuildFilename(sequence int, r entity.InvoiceRecord) string {
	return fmt.Sprintf("%d_CONTENEDOR(%s;%s;%s;%s;%s;%s).xml",
		sequence,
		r.NIT,
		r.InvoiceNumber,
		r.PeriodStart,
		r.PeriodEnd,
		PadPlanCode(r.PlanCode),
		strings.ToUpper(strings.TrimSpace(r.LineType)),
	)
}

var unsafeFilenameChars = strings.NewReplacer("/", "-", "\\", "-")

// SafeFilename nombre utilizable en disco o dentro de un ZIP. Las fechas de la
// planilla suelen venir con "/", que en un destino real crearía carpetas.
// El nombre del ProcessedInvoice no se altera; sólo el del archivo escrito.
func SafeFilename(name string) string {
	return unsafeFilenameChars.Replace(name)
}
