// Package dian implementa sobre XML UBL 2.1 las correcciones de facturas del
// sector salud: desenvolver AttachedDocument, reglas estructurales, montos y
// huella del documento de salida.
package dian

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Contenedor-api/pkg/dian"
)

// LineTypePolicy qué hacer con las fechas cuando el tipo de ítem del registro
// no es "servicio" ni "tiquete".
type LineTypePolicy string

const (
	// LineTypeApply aplica las fechas del registro como si fuera "servicio".
	LineTypeApply LineTypePolicy = "apply"
	// LineTypeSkip no toca las fechas.
	LineTypeSkip LineTypePolicy = "skip"
)

// ParseLineTypePolicy valida el valor de configuración (vacío = apply).
func ParseLineTypePolicy(s string) (LineTypePolicy, error) {
	switch LineTypePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LineTypeApply:
		return LineTypeApply, nil
	case LineTypeSkip:
		return LineTypeSkip, nil
	default:
		return "", fmt.Errorf("dian: política de tipo de ítem desconocida %q (apply|skip)", s)
	}
}

// MutatorOptions parámetros de las reglas estructurales.
type MutatorOptions struct {
	ContingencyMarker string         // CustomizationID canónico (SS-CUFE)
	UnknownLineType   LineTypePolicy // tipo de ítem no reconocido
	SyncHealthDates   bool           // copiar también las fechas a AdditionalInformation
}

// DefaultMutatorOptions valores por defecto.
func DefaultMutatorOptions() MutatorOptions {
	return MutatorOptions{
		ContingencyMarker: dian.ContingencyMarkerDefault,
		UnknownLineType:   LineTypeApply,
	}
}
