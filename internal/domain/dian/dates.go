package dian

import (
	"regexp"
	"strings"
)

var dmyDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// NormalizeDate convierte DD/MM/YYYY a YYYY-MM-DD. Cualquier otro formato
// (incluido YYYY-MM-DD) se devuelve sin cambios: no se valida ni falla.
func NormalizeDate(value string) string {
	m := dmyDate.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}
