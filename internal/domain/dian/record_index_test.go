package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

func testRecords() []entity.InvoiceRecord {
	return []entity.InvoiceRecord{
		{NIT: "900123456", InvoiceNumber: "FE100", PlanCode: "3", Row: 2},
		{NIT: "900123456", InvoiceNumber: "FE101", PlanCode: "1", Row: 3},
		{NIT: "800987654", InvoiceNumber: "FE100", PlanCode: "9", Row: 4}, // duplicado de FE100
		{NIT: "", InvoiceNumber: "", Row: 5},                              // fila en blanco
	}
}

func TestRecordIndex_CruzaPorNumeroDeFactura(t *testing.T) {
	ix := dian.NewRecordIndex(testRecords())

	r, kind, ok := ix.Lookup("FE101")
	require.True(t, ok)
	assert.Equal(t, dian.MatchByInvoiceNumber, kind)
	assert.Equal(t, 3, r.Row)
}

// Si varios registros comparten número de factura gana el primero cargado.
func TestRecordIndex_PrimeraOcurrenciaGana(t *testing.T) {
	ix := dian.NewRecordIndex(testRecords())

	r, _, ok := ix.Lookup("FE100")
	require.True(t, ok)
	assert.Equal(t, 2, r.Row, "debe ganar la fila 2, no la 4")
	assert.Equal(t, "3", r.PlanCode)
}

func TestRecordIndex_RespaldoPorNIT(t *testing.T) {
	ix := dian.NewRecordIndex(testRecords())

	r, kind, ok := ix.Lookup("900123456")
	require.True(t, ok)
	assert.Equal(t, dian.MatchByNIT, kind)
	assert.Equal(t, 2, r.Row, "el primer registro con ese NIT gana")

	r, _, ok = ix.Lookup("800987654")
	require.True(t, ok)
	assert.Equal(t, 4, r.Row)
}

func TestRecordIndex_SinCruce(t *testing.T) {
	ix := dian.NewRecordIndex(testRecords())

	_, kind, ok := ix.Lookup("FE999")
	assert.False(t, ok)
	assert.Equal(t, dian.MatchNone, kind)

	_, _, ok = ix.Lookup("")
	assert.False(t, ok, "una llave vacía no debe cruzar con la fila en blanco")
	assert.Equal(t, 4, ix.Len())
}
