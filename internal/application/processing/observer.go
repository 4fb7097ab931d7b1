package processing

import (
	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/pkg/logger"
)

// LogObserver lleva los eventos del procesamiento al logger estructurado.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver crea el observador.
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnSkip(input, reason string) {
	o.log.Info().Str("input", input).Str("reason", reason).Msg("documento omitido")
}

func (o *LogObserver) OnRuleApplied(input, rule, detail string) {
	o.log.Debug().Str("input", input).Str("rule", rule).Str("detail", detail).Msg("regla aplicada")
}

func (o *LogObserver) OnWarning(input, message string) {
	o.log.Warn().Str("input", input).Msg(message)
}

var _ dian.Observer = (*LogObserver)(nil)
