package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"25/12/2025":  "2025-12-25",
		"01/03/2024":  "2024-03-01",
		"2025-12-25":  "2025-12-25",
		"2025/12/25":  "2025/12/25",
		"1/3/2024":    "1/3/2024",
		"":            "",
		"marzo 2024":  "marzo 2024",
		" 31/03/2024": "2024-03-31",
	}
	for in, want := range cases {
		assert.Equal(t, want, dian.NormalizeDate(in), "entrada %q", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipo de ítem
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyLineType(t *testing.T) {
	cases := map[string]dian.LineTypeClass{
		"servicio":    dian.LineTypeServicio,
		" Servicios ": dian.LineTypeServicio,
		"SERVICIO":    dian.LineTypeServicio,
		"servício":    dian.LineTypeServicio,
		"tiquete":     dian.LineTypeTiquete,
		"Tiquetes":    dian.LineTypeTiquete,
		"medicamento": dian.LineTypeUnknown,
		"":            dian.LineTypeUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, dian.ClassifyLineType(in), "entrada %q", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de beneficios y nombre de archivo
// ──────────────────────────────────────────────────────────────────────────────

func TestPadPlanCode(t *testing.T) {
	assert.Equal(t, "03", dian.PadPlanCode("3"))
	assert.Equal(t, "12", dian.PadPlanCode("12"))
	assert.Equal(t, "123", dian.PadPlanCode("123"))
	assert.Equal(t, "", dian.PadPlanCode(""))
	assert.Equal(t, "", dian.PadPlanCode("  "))
}

func TestBuildFilename_FormatoExacto(t *testing.T) {
	r := entity.InvoiceRecord{
		NIT: "900123456", InvoiceNumber: "FE100",
		PeriodStart: "01/03/2024", PeriodEnd: "31/03/2024",
		PlanCode: "3", LineType: "servicio",
	}
	assert.Equal(t,
		"1_CONTENEDOR(900123456;FE100;01/03/2024;31/03/2024;03;SERVICIO).xml",
		dian.BuildFilename(1, r))
}

// El mismo registro y consecutivo siempre producen el mismo nombre.
func TestBuildFilename_Determinista(t *testing.T) {
	r := entity.InvoiceRecord{NIT: "1", InvoiceNumber: "A", LineType: "tiquete"}
	assert.Equal(t, dian.BuildFilename(7, r), dian.BuildFilename(7, r))
	assert.Equal(t, "7_CONTENEDOR(1;A;;;;TIQUETE).xml", dian.BuildFilename(7, r))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t,
		"1_CONTENEDOR(900123456;FE100;01-03-2024;31-03-2024;03;SERVICIO).xml",
		dian.SafeFilename("1_CONTENEDOR(900123456;FE100;01/03/2024;31/03/2024;03;SERVICIO).xml"))
	assert.Equal(t, "a-b.xml", dian.SafeFilename(`a\b.xml`))
}
