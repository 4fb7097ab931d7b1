package spreadsheet_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/spreadsheet"
)

type warnings struct {
	mu   sync.Mutex
	msgs []string
}

func (w *warnings) OnSkip(string, string)                {}
func (w *warnings) OnRuleApplied(string, string, string) {}
func (w *warnings) OnWarning(input, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, input+": "+msg)
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// ─────────────────────────────────────────────────────────────────────────────
// XLSX
// ─────────────────────────────────────────────────────────────────────────────

func TestReader_XLSX(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"NIT", "FACTURA", "FECHA_INICIO", "FECHA_FIN", "PLAN", "ITEM"},
		{"900123456", "FE100", "01/03/2024", "31/03/2024", "3", "SERVICIO"},
		{"", "", "", "", "", ""},
		{"800200300", "FE101", "", "", "", "Tiquete"},
	})

	r := spreadsheet.NewReader(nil, nil)
	recs, err := r.Read("planilla.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "900123456", recs[0].NIT)
	assert.Equal(t, "FE100", recs[0].InvoiceNumber)
	assert.Equal(t, "01/03/2024", recs[0].PeriodStart)
	assert.Equal(t, "31/03/2024", recs[0].PeriodEnd)
	assert.Equal(t, "3", recs[0].PlanCode)
	assert.Equal(t, "servicio", recs[0].LineType)
	assert.Equal(t, 2, recs[0].Row)

	assert.Equal(t, "tiquete", recs[1].LineType)
	assert.Equal(t, 4, recs[1].Row, "la fila vacía se omite pero se conserva la numeración")
}

func TestReader_XLSX_Invalid(t *testing.T) {
	_, err := spreadsheet.NewReader(nil, nil).Read("x.xlsx", strings.NewReader("no es zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// CSV
// ─────────────────────────────────────────────────────────────────────────────

func TestReader_CSV_Delimiters(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"coma", "FACTURA,NIT,PLAN\nFE1,900123456,7\n"},
		{"punto y coma", "FACTURA;NIT;PLAN\nFE1;900123456;7\n"},
		{"BOM", "\ufeffFACTURA,NIT,PLAN\nFE1,900123456,7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := spreadsheet.NewReader(nil, nil).Read("p.csv", strings.NewReader(tt.data))
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "FE1", recs[0].InvoiceNumber)
			assert.Equal(t, "900123456", recs[0].NIT)
			assert.Equal(t, "7", recs[0].PlanCode)
		})
	}
}

func TestReader_CSV_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("FACTURA;NIT;ITEM\nFE1;900123456;Servicio médico\n")
	require.NoError(t, err)

	recs, err := spreadsheet.NewReader(nil, nil).ReadCSV("p.csv", strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "servicio médico", recs[0].LineType)
}

// Las columnas duplicadas (NIT y nit) se resuelven con el primer valor no vacío.
func TestReader_AliasFallback(t *testing.T) {
	data := "NIT,nit,factura,FechaInicio\n,900123456,FE9,2024-01-01\n800200300,111,FE10,\n"
	recs, err := spreadsheet.NewReader(nil, nil).Read("p.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "900123456", recs[0].NIT)
	assert.Equal(t, "2024-01-01", recs[0].PeriodStart)
	assert.Equal(t, "800200300", recs[1].NIT)
}

func TestReader_CaseInsensitiveHeaders(t *testing.T) {
	recs, err := spreadsheet.NewReader(nil, nil).Read("p.csv", strings.NewReader(" Factura ,Nit\nFE1,900123456\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "FE1", recs[0].InvoiceNumber)
	assert.Equal(t, "900123456", recs[0].NIT)
}

func TestReader_MissingKeyColumns(t *testing.T) {
	_, err := spreadsheet.NewReader(nil, nil).Read("p.csv", strings.NewReader("PLAN,ITEM\n1,servicio\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = spreadsheet.NewReader(nil, nil).Read("p.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReader_UnsupportedExtension(t *testing.T) {
	_, err := spreadsheet.NewReader(nil, nil).Read("p.ods", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReader_NITWarnings(t *testing.T) {
	w := &warnings{}
	// 9001234569 trae dígito de verificación incorrecto (el correcto es 8); 123 es corto.
	data := "FACTURA,NIT\nFE1,9001234568\nFE2,9001234569\nFE3,123\n"
	recs, err := spreadsheet.NewReader(nil, w).Read("p.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, 3, "los NIT sospechosos sólo generan advertencia")

	require.Len(t, w.msgs, 2)
	assert.Contains(t, w.msgs[0], "p.csv fila 3")
	assert.Contains(t, w.msgs[1], "p.csv fila 4")
}

// ─────────────────────────────────────────────────────────────────────────────
// Alias YAML
// ─────────────────────────────────────────────────────────────────────────────

func TestLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alias.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  factura: [NUMERO_FACTURA]\n"), 0o644))

	table, err := spreadsheet.LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NUMERO_FACTURA"}, table[spreadsheet.FieldInvoice])
	assert.Equal(t, spreadsheet.DefaultAliases()[spreadsheet.FieldNIT], table[spreadsheet.FieldNIT])

	recs, err := spreadsheet.NewReader(table, nil).Read("p.csv", strings.NewReader("NUMERO_FACTURA,NIT\nFE5,900123456\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "FE5", recs[0].InvoiceNumber)
}

func TestLoadAliases_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := spreadsheet.LoadAliases(write("a.yaml", "aliases:\n  desconocido: [X]\n"))
	assert.Error(t, err)
	_, err = spreadsheet.LoadAliases(write("b.yaml", "aliases:\n  nit: []\n"))
	assert.Error(t, err)
	_, err = spreadsheet.LoadAliases(write("c.yaml", "aliases: [\n"))
	assert.Error(t, err)
	_, err = spreadsheet.LoadAliases(filepath.Join(dir, "no-existe.yaml"))
	assert.Error(t, err)

	table, err := spreadsheet.LoadAliases("")
	require.NoError(t, err)
	assert.Equal(t, spreadsheet.DefaultAliases(), table)
}
