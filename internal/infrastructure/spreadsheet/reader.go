package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	domaindian "github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// Reader convierte planillas en registros.
type Reader struct {
	aliases AliasTable
	obs     domaindian.Observer
}

// NewReader crea el lector. obs recibe las observaciones por fila (ValidateRecord).
func NewReader(aliases AliasTable, obs domaindian.Observer) *Reader {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if obs == nil {
		obs = domaindian.NopObserver{}
	}
	return &Reader{aliases: aliases, obs: obs}
}

// Read decide el formato por la extensión de name (.csv o libro de Excel).
func (r *Reader) Read(name string, src io.Reader) ([]entity.InvoiceRecord, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return r.ReadCSV(name, src)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return r.ReadXLSX(name, src)
	default:
		return nil, fmt.Errorf("spreadsheet: formato no soportado %q: %w", filepath.Ext(name), domain.ErrInvalidInput)
	}
}

// ReadXLSX lee la primera hoja del libro.
func (r *Reader) ReadXLSX(name string, src io.Reader) ([]entity.InvoiceRecord, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir %s: %w: %v", name, domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet: %s no tiene hojas: %w", name, domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer filas de %s: %w", name, err)
	}
	return r.fromRows(name, rows)
}

// ReadCSV lee un CSV separado por coma o punto y coma. Los archivos que no son
// UTF-8 válido se interpretan como Windows-1252 (exportación típica de Excel).
func (r *Reader) ReadCSV(name string, src io.Reader) ([]entity.InvoiceRecord, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		if data, err = charmap.Windows1252.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("spreadsheet: decodificar %s: %w", name, err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: CSV inválido %s: %w: %v", name, domain.ErrInvalidInput, err)
	}
	return r.fromRows(name, rows)
}

// detectDelimiter mira la primera línea: Excel en español exporta con ';'.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func (r *Reader) fromRows(name string, rows [][]string) ([]entity.InvoiceRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet: %s está vacía: %w", name, domain.ErrInvalidInput)
	}
	cols := r.aliases.resolve(rows[0])
	if len(cols[FieldInvoice]) == 0 && len(cols[FieldNIT]) == 0 {
		return nil, fmt.Errorf("spreadsheet: %s no tiene columna de factura ni de NIT (encabezados: %s): %w",
			name, strings.Join(rows[0], ", "), domain.ErrInvalidInput)
	}

	records := make([]entity.InvoiceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowNum := i + 2 // 1-based y con encabezado
		rec := entity.InvoiceRecord{
			NIT:           cell(row, cols[FieldNIT]),
			InvoiceNumber: cell(row, cols[FieldInvoice]),
			PeriodStart:   cell(row, cols[FieldPeriodStart]),
			PeriodEnd:     cell(row, cols[FieldPeriodEnd]),
			PlanCode:      cell(row, cols[FieldPlan]),
			LineType:      strings.ToLower(cell(row, cols[FieldLineType])),
			Row:           rowNum,
		}
		if err := domaindian.ValidateRecord(rec); err != nil {
			r.obs.OnWarning(fmt.Sprintf("%s fila %d", name, rowNum), strings.ReplaceAll(err.Error(), "\n", "; "))
		}
		records = append(records, rec)
	}
	return records, nil
}

// cell primer valor no vacío entre las columnas candidatas.
func cell(row []string, cols []int) string {
	for _, c := range cols {
		if c < len(row) {
			if v := strings.TrimSpace(row[c]); v != "" {
				return v
			}
		}
	}
	return ""
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
