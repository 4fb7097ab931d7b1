// Package dian contiene las reglas puras del corrector de contenedores DIAN:
// índice de registros, normalización de fechas, clasificación del tipo de ítem
// y nombre de los archivos de salida. No depende de XML ni de infraestructura.
package dian

import "github.com/jhoicas/Contenedor-api/internal/domain/entity"

// MatchKind indica por cuál campo del registro se resolvió la llave.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchByInvoiceNumber
	MatchByNIT
)

func (k MatchKind) String() string {
	switch k {
	case MatchByInvoiceNumber:
		return "factura"
	case MatchByNIT:
		return "nit"
	default:
		return "ninguno"
	}
}

// RecordIndex resuelve registros de la planilla por número de factura y, en su
// defecto, por NIT. Si varios registros comparten llave gana el primero en el
// orden de carga. Es de sólo lectura después de construido (sin locks).
type RecordIndex struct {
	byNumber map[string]entity.InvoiceRecord
	byNIT    map[string]entity.InvoiceRecord
	size     int
}

// NewRecordIndex construye el índice respetando "primera ocurrencia gana".
func NewRecordIndex(records []entity.InvoiceRecord) *RecordIndex {
	ix := &RecordIndex{
		byNumber: make(map[string]entity.InvoiceRecord, len(records)),
		byNIT:    make(map[string]entity.InvoiceRecord, len(records)),
		size:     len(records),
	}
	for _, r := range records {
		if r.InvoiceNumber != "" {
			if _, ok := ix.byNumber[r.InvoiceNumber]; !ok {
				ix.byNumber[r.InvoiceNumber] = r
			}
		}
		if r.NIT != "" {
			if _, ok := ix.byNIT[r.NIT]; !ok {
				ix.byNIT[r.NIT] = r
			}
		}
	}
	return ix
}

// Lookup busca por igualdad exacta contra el número de factura y luego contra el NIT.
// Una llave vacía nunca cruza (las filas en blanco de la planilla no deben capturar documentos).
func (ix *RecordIndex) Lookup(key string) (entity.InvoiceRecord, MatchKind, bool) {
	if key == "" {
		return entity.InvoiceRecord{}, MatchNone, false
	}
	if r, ok := ix.byNumber[key]; ok {
		return r, MatchByInvoiceNumber, true
	}
	if r, ok := ix.byNIT[key]; ok {
		return r, MatchByNIT, true
	}
	return entity.InvoiceRecord{}, MatchNone, false
}

// Len cantidad de registros usados para construir el índice.
func (ix *RecordIndex) Len() int { return ix.size }
