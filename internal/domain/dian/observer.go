package dian

// Nombres de las reglas estructurales, usados en los eventos del observador.
const (
	RuleContingency = "contingencia"
	RulePeriodDates = "fechas_periodo"
	RuleHealthDates = "fechas_sector_salud"
	RulePlanCode    = "plan_beneficios"
	RuleCorrection  = "correccion_manual"
)

// Observer recibe los eventos del procesamiento. Reemplaza los logs globales:
// el núcleo no escribe en ningún logger, sólo notifica.
// Las implementaciones deben ser seguras para uso concurrente.
type Observer interface {
	// OnSkip un documento no produjo salida (sin registro, mal formado, etc.).
	OnSkip(input, reason string)
	// OnRuleApplied una regla modificó el documento.
	OnRuleApplied(input, rule, detail string)
	// OnWarning una regla no se pudo aplicar por falta de un ancla u otro dato.
	OnWarning(input, message string)
}

// NopObserver descarta todos los eventos.
type NopObserver struct{}

func (NopObserver) OnSkip(string, string)                {}
func (NopObserver) OnRuleApplied(string, string, string) {}
func (NopObserver) OnWarning(string, string)             {}

var _ Observer = NopObserver{}
