package dian

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// LineTypeClass clasificación del tipo de ítem de la planilla.
type LineTypeClass int

const (
	LineTypeUnknown LineTypeClass = iota
	LineTypeServicio
	LineTypeTiquete
)

func (c LineTypeClass) String() string {
	switch c {
	case LineTypeServicio:
		return entity.LineTypeServicio
	case LineTypeTiquete:
		return entity.LineTypeTiquete
	default:
		return "desconocido"
	}
}

// ClassifyLineType reconoce "servicio"/"tiquete" sin importar mayúsculas, tildes,
// espacios alrededor ni plural.
func ClassifyLineType(raw string) LineTypeClass {
	switch foldLineType(raw) {
	case "servicio", "servicios":
		return LineTypeServicio
	case "tiquete", "tiquetes":
		return LineTypeTiquete
	default:
		return LineTypeUnknown
	}
}

func foldLineType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
