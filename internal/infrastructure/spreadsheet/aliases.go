// Package spreadsheet lee la planilla de registros (XLSX o CSV) y la convierte
// en InvoiceRecord resolviendo los encabezados con una tabla de alias.
package spreadsheet

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Campos canónicos de la planilla.
const (
	FieldNIT         = "nit"
	FieldInvoice     = "factura"
	FieldPeriodStart = "fecha_inicio"
	FieldPeriodEnd   = "fecha_fin"
	FieldPlan        = "plan"
	FieldLineType    = "item"
)

var canonicalFields = []string{FieldNIT, FieldInvoice, FieldPeriodStart, FieldPeriodEnd, FieldPlan, FieldLineType}

// AliasTable campo canónico → encabezados aceptados, en orden de preferencia.
type AliasTable map[string][]string

// DefaultAliases encabezados que genera el formato de la EPS.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldNIT:         {"NIT", "nit"},
		FieldInvoice:     {"FACTURA", "factura"},
		FieldPeriodStart: {"FECHA_INICIO", "fecha_inicio", "FechaInicio"},
		FieldPeriodEnd:   {"FECHA_FIN", "fecha_fin", "FechaFin"},
		FieldPlan:        {"PLAN", "plan"},
		FieldLineType:    {"ITEM", "item"},
	}
}

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliases lee un YAML con la forma
//
//	aliases:
//	  factura: [FACTURA, NUMERO_FACTURA]
//
// Los campos presentes reemplazan los de la tabla por defecto; los ausentes se conservan.
// Un path vacío devuelve la tabla por defecto.
func LoadAliases(path string) (AliasTable, error) {
	table := DefaultAliases()
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer alias: %w", err)
	}
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("spreadsheet: alias YAML inválido: %w", err)
	}
	for field, headers := range f.Aliases {
		field = strings.ToLower(strings.TrimSpace(field))
		if !isCanonical(field) {
			return nil, fmt.Errorf("spreadsheet: campo de alias desconocido %q", field)
		}
		if len(headers) == 0 {
			return nil, fmt.Errorf("spreadsheet: el campo %q no tiene encabezados", field)
		}
		table[field] = headers
	}
	return table, nil
}

func isCanonical(field string) bool {
	for _, f := range canonicalFields {
		if f == field {
			return true
		}
	}
	return false
}

// resolve columnas candidatas por campo: primero las coincidencias exactas en
// el orden de los alias, luego las que sólo coinciden sin distinguir
// mayúsculas ni espacios alrededor. Una columna no se repite.
func (t AliasTable) resolve(headers []string) map[string][]int {
	out := make(map[string][]int, len(t))
	for field, aliases := range t {
		used := make(map[int]bool)
		var cols []int
		for _, a := range aliases {
			for i, h := range headers {
				if h == a && !used[i] {
					cols = append(cols, i)
					used[i] = true
				}
			}
		}
		for _, a := range aliases {
			for i, h := range headers {
				if !used[i] && strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(a)) {
					cols = append(cols, i)
					used[i] = true
				}
			}
		}
		if len(cols) > 0 {
			out[field] = cols
		}
	}
	return out
}
