package repository

import (
	"context"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// CorrectionRuleRepository define el puerto de persistencia para reglas de corrección.
// List devuelve las reglas en orden de aplicación (Position ascendente).
type CorrectionRuleRepository interface {
	Create(ctx context.Context, rule *entity.CorrectionRule) error
	// CreateAll guarda todas las reglas o ninguna.
	CreateAll(ctx context.Context, rules []*entity.CorrectionRule) error
	Update(ctx context.Context, rule *entity.CorrectionRule) error
	Delete(ctx context.Context, id string) error
	// GetByID devuelve nil, nil si la regla no existe.
	GetByID(ctx context.Context, id string) (*entity.CorrectionRule, error)
	List(ctx context.Context) ([]*entity.CorrectionRule, error)
}
