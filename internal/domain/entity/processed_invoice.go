package entity

import "github.com/shopspring/decimal"

// ProcessedInvoice es el resultado de procesar un XML que cruzó con un registro.
// Se crea una vez por documento cruzado y no se modifica después, salvo el
// reemplazo de Content por el pase de correcciones literales.
type ProcessedInvoice struct {
	Filename      string
	Content       string // XML completo, siempre con declaración
	Sequence      int    // Consecutivo (1..M) sobre documentos cruzados
	InputName     string // Nombre del archivo de entrada
	Container     bool   // true si el insumo era un AttachedDocument
	Record        InvoiceRecord
	PayableAmount decimal.Decimal // LegalMonetaryTotal/PayableAmount (cero si no existe)
	Digest        string          // SHA-256 (hex) del XML canonicalizado; del texto crudo si C14N falla (se advierte al observador)
}
