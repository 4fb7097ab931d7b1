package dian

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contenedor-api/internal/infrastructure/xmldoc"
	"github.com/jhoicas/Contenedor-api/pkg/dian"
)

// PayableAmount valor a pagar (LegalMonetaryTotal/PayableAmount). Cero si no
// existe o no es numérico: el resumen del lote no debe fallar por esto.
func PayableAmount(doc *xmldoc.Document) decimal.Decimal {
	total := doc.First(nil, dian.ElemLegalMonetaryTotal)
	if total == nil {
		return decimal.Zero
	}
	raw := strings.TrimSpace(xmldoc.Text(doc.First(total, dian.ElemPayableAmount)))
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
