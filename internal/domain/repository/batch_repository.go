package repository

import (
	"context"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes procesados y sus archivos.
type BatchRepository interface {
	// Create persiste el lote y todos sus archivos en una sola transacción.
	Create(ctx context.Context, batch *entity.Batch) error
	// GetByID devuelve nil, nil si el lote no existe. Incluye los archivos en orden de consecutivo.
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
}
