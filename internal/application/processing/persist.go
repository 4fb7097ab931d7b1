package processing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// PersistFailure archivo que no se pudo escribir.
type PersistFailure struct {
	Filename string
	Err      error
}

// PersistReport resultado de escribir un lote en un destino.
type PersistReport struct {
	Written []string
	Failed  []PersistFailure
}

// Persist escribe las salidas en orden. Con abortOnError se detiene en el
// primer fallo; si no, sigue y reporta todos al final. Nunca modifica invoices.
func Persist(ctx context.Context, sink OutputSink, invoices []entity.ProcessedInvoice, abortOnError bool) (*PersistReport, error) {
	rep := &PersistReport{}
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("processing: %w: %w", domain.ErrCanceled, err)
		}
		if err := sink.Write(ctx, inv.Filename, []byte(inv.Content)); err != nil {
			rep.Failed = append(rep.Failed, PersistFailure{Filename: inv.Filename, Err: err})
			if abortOnError {
				return rep, fmt.Errorf("processing: escribir %s: %w: %w", inv.Filename, domain.ErrWriteFailed, err)
			}
			continue
		}
		rep.Written = append(rep.Written, inv.Filename)
	}
	if len(rep.Failed) > 0 {
		return rep, fmt.Errorf("processing: %d de %d archivos sin escribir: %w", len(rep.Failed), len(invoices), domain.ErrWriteFailed)
	}
	return rep, nil
}
