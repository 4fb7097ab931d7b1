package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

func rule(id, search, replace string, enabled bool) entity.CorrectionRule {
	return entity.CorrectionRule{ID: id, SearchText: search, ReplaceText: replace, Enabled: enabled}
}

// La salida de una regla es la entrada de la siguiente.
func TestCorrectionEngine_Encadena(t *testing.T) {
	e := dian.NewCorrectionEngine([]entity.CorrectionRule{
		rule("1", "A", "B", true),
		rule("2", "B", "C", true),
	})

	out, counts := e.Apply("A")
	assert.Equal(t, "C", out)
	assert.Equal(t, []int{1, 1}, counts)
}

func TestCorrectionEngine_OrdenImporta(t *testing.T) {
	e := dian.NewCorrectionEngine([]entity.CorrectionRule{
		rule("2", "B", "C", true),
		rule("1", "A", "B", true),
	})
	out, _ := e.Apply("A")
	assert.Equal(t, "B", out)
}

func TestCorrectionEngine_ReglasInactivasSeIgnoran(t *testing.T) {
	e := dian.NewCorrectionEngine([]entity.CorrectionRule{
		rule("1", "x", "y", false),
		rule("2", "", "y", true),
		rule("3", "x", "", true),
		rule("4", "x", "z", true),
	})

	assert.Len(t, e.Rules(), 1)
	out, counts := e.Apply("xx")
	assert.Equal(t, "zz", out)
	assert.Equal(t, []int{2}, counts)
}

// Reemplazo literal: los metacaracteres no se interpretan.
func TestCorrectionEngine_Literal(t *testing.T) {
	e := dian.NewCorrectionEngine([]entity.CorrectionRule{rule("1", "a.b*", "ok", true)})

	out, counts := e.Apply("a.b* aXbb")
	assert.Equal(t, "ok aXbb", out)
	assert.Equal(t, []int{1}, counts)

	out, counts = e.Apply("nada")
	assert.Equal(t, "nada", out)
	assert.Equal(t, []int{0}, counts, "sin coincidencias se reporta cero")
}
