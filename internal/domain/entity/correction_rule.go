package entity

import "time"

// CorrectionRule es un reemplazo literal definido por el usuario que se aplica
// sobre el XML final, después de las correcciones estructurales.
type CorrectionRule struct {
	ID          string
	SearchText  string
	ReplaceText string
	Description string
	Enabled     bool
	Position    int // Orden de aplicación cuando la regla está persistida
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active indica si la regla participa en el pase de correcciones:
// habilitada y con ambos textos no vacíos.
func (r CorrectionRule) Active() bool {
	return r.Enabled && r.SearchText != "" && r.ReplaceText != ""
}
