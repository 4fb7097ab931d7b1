package batch

import (
	"context"
	"io"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// RecordReader convierte la planilla recibida en registros.
type RecordReader interface {
	Read(name string, src io.Reader) ([]entity.InvoiceRecord, error)
}

// RuleSource reglas de corrección persistidas, en orden.
type RuleSource interface {
	Stored(ctx context.Context) ([]entity.CorrectionRule, error)
}

// ReportGenerator genera el reporte PDF de un lote.
type ReportGenerator interface {
	BatchReport(ctx context.Context, batch *entity.Batch) ([]byte, error)
}
