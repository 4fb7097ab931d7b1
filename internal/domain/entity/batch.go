package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleMatchCount conteo de coincidencias de una regla de corrección en todo el lote.
type RuleMatchCount struct {
	RuleID      string
	Description string
	Matches     int
}

// SkippedInput documento de entrada que no produjo salida.
type SkippedInput struct {
	InputName string
	Key       string // llave usada para el cruce (vacía si no se pudo extraer)
	Reason    string
}

// Batch resumen persistido de una corrida del procesador.
type Batch struct {
	ID           string
	CreatedBy    string
	Inputs       int
	Files        []ProcessedInvoice
	Unmatched    []SkippedInput
	Malformed    []SkippedInput
	RuleMatches  []RuleMatchCount
	TotalPayable decimal.Decimal
	CreatedAt    time.Time
}

// Processed cantidad de archivos generados.
func (b *Batch) Processed() int { return len(b.Files) }
