package dian

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	pkgdian "github.com/jhoicas/Contenedor-api/pkg/dian"
)

// ErrSuspiciousRecord agrupa las observaciones sobre una fila de la planilla.
// Nunca impide el procesamiento: los valores se usan tal cual.
var ErrSuspiciousRecord = errors.New("registro sospechoso")

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateRecord revisa una fila de la planilla y devuelve todas las
// observaciones juntas (errors.Join), o nil si no hay ninguna.
func ValidateRecord(rec entity.InvoiceRecord) error {
	var errs []error

	if strings.TrimSpace(rec.InvoiceNumber) == "" && strings.TrimSpace(rec.NIT) == "" {
		errs = append(errs, errors.New("sin número de factura ni NIT: la fila nunca se cruzará"))
	}
	if rec.NIT != "" {
		if err := pkgdian.CheckNIT(rec.NIT); err != nil {
			errs = append(errs, fmt.Errorf("NIT: %w", err))
		}
	}
	for _, d := range []struct{ label, value string }{
		{"fecha de inicio", rec.PeriodStart},
		{"fecha final", rec.PeriodEnd},
	} {
		v := strings.TrimSpace(d.value)
		if v != "" && !dmyDate.MatchString(v) && !isoDate.MatchString(v) {
			errs = append(errs, fmt.Errorf("%s %q no es DD/MM/YYYY ni YYYY-MM-DD; se escribirá sin cambios", d.label, d.value))
		}
	}
	if rec.LineType != "" && ClassifyLineType(rec.LineType) == LineTypeUnknown {
		errs = append(errs, fmt.Errorf("tipo de ítem %q no reconocido", rec.LineType))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrSuspiciousRecord}, errs...)...)
	}
	return nil
}
