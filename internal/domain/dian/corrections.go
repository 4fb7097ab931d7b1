package dian

import (
	"strings"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// CorrectionEngine reemplazos literales definidos por el usuario. Se aplica
// sobre el texto final ya serializado, después de las reglas estructurales.
// Las reglas corren en el orden declarado y cada una recibe la salida de la
// anterior, así que el orden importa (A→B seguido de B→C convierte A en C).
type CorrectionEngine struct {
	rules []entity.CorrectionRule
}

// NewCorrectionEngine conserva sólo las reglas activas, en el mismo orden.
func NewCorrectionEngine(rules []entity.CorrectionRule) *CorrectionEngine {
	active := make([]entity.CorrectionRule, 0, len(rules))
	for _, r := range rules {
		if r.Active() {
			active = append(active, r)
		}
	}
	return &CorrectionEngine{rules: active}
}

// Rules reglas activas en orden.
func (e *CorrectionEngine) Rules() []entity.CorrectionRule { return e.rules }

// Apply devuelve el texto corregido y las coincidencias de cada regla activa
// (mismo índice que Rules). Los conteos son informativos.
func (e *CorrectionEngine) Apply(text string) (string, []int) {
	counts := make([]int, len(e.rules))
	for i, r := range e.rules {
		n := strings.Count(text, r.SearchText)
		if n == 0 {
			continue
		}
		counts[i] = n
		text = strings.ReplaceAll(text, r.SearchText, r.ReplaceText)
	}
	return text, counts
}
