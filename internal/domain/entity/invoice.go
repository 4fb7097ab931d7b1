package entity

// Tipos de ítem canónicos de la planilla.
const (
	LineTypeServicio = "servicio" // fechas del periodo tomadas de la planilla
	LineTypeTiquete  = "tiquete"  // fechas del periodo tomadas del propio XML
)

// InvoiceRecord representa una fila de la planilla que describe una factura ya emitida.
// Es inmutable una vez cargada; el núcleo sólo la lee.
type InvoiceRecord struct {
	NIT           string // NIT del emisor (tal como viene en la planilla)
	InvoiceNumber string // Número de factura; llave principal de cruce
	PeriodStart   string // Fecha de inicio del periodo (sin validar)
	PeriodEnd     string // Fecha final del periodo (sin validar)
	PlanCode      string // Código del plan de beneficios (puede ser vacío)
	LineType      string // "servicio" / "tiquete" en texto libre
	Row           int    // Fila de origen en la planilla (1-based), sólo informativo
}
