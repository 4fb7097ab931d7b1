package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/domain/repository"
)

var _ repository.CorrectionRuleRepository = (*CorrectionRuleRepo)(nil)

// CorrectionRuleRepo implementación de CorrectionRuleRepository (usable con pool o tx).
type CorrectionRuleRepo struct {
	q  Querier
	tx *TxRunner
}

// NewCorrectionRuleRepository construye el adaptador. Con tx != nil, CreateAll
// abre su propia transacción; con tx == nil se asume que q ya es una transacción.
func NewCorrectionRuleRepository(q Querier, tx *TxRunner) *CorrectionRuleRepo {
	return &CorrectionRuleRepo{q: q, tx: tx}
}

const ruleColumns = `id, search_text, replace_text, description, enabled, position, created_at, updated_at`

// Create persiste una regla nueva.
func (r *CorrectionRuleRepo) Create(ctx context.Context, rule *entity.CorrectionRule) error {
	return insertRule(ctx, r.q, rule)
}

// CreateAll inserta las reglas en una sola transacción.
func (r *CorrectionRuleRepo) CreateAll(ctx context.Context, rules []*entity.CorrectionRule) error {
	insert := func(q Querier) error {
		for _, rule := range rules {
			if err := insertRule(ctx, q, rule); err != nil {
				return err
			}
		}
		return nil
	}
	if r.tx == nil {
		return insert(r.q)
	}
	return r.tx.Run(ctx, insert)
}

func insertRule(ctx context.Context, q Querier, rule *entity.CorrectionRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	query := `
		INSERT INTO correction_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.Exec(ctx, query,
		rule.ID, rule.SearchText, rule.ReplaceText, rule.Description, rule.Enabled, rule.Position,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("la regla %s ya existe: %w", rule.ID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert correction rule: %w", err)
	}
	return nil
}

// Update reemplaza textos, descripción, estado y posición.
func (r *CorrectionRuleRepo) Update(ctx context.Context, rule *entity.CorrectionRule) error {
	query := `
		UPDATE correction_rules
		SET search_text = $2, replace_text = $3, description = $4, enabled = $5, position = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rule.ID, rule.SearchText, rule.ReplaceText, rule.Description, rule.Enabled, rule.Position, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update correction rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una regla por ID.
func (r *CorrectionRuleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM correction_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete correction rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *CorrectionRuleRepo) GetByID(ctx context.Context, id string) (*entity.CorrectionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM correction_rules WHERE id = $1`
	var rule entity.CorrectionRule
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.SearchText, &rule.ReplaceText, &rule.Description, &rule.Enabled, &rule.Position,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get correction rule: %w", err)
	}
	return &rule, nil
}

// List devuelve las reglas en orden de aplicación.
func (r *CorrectionRuleRepo) List(ctx context.Context) ([]*entity.CorrectionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM correction_rules ORDER BY position, created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list correction rules: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CorrectionRule, 0)
	for rows.Next() {
		var rule entity.CorrectionRule
		if err := rows.Scan(&rule.ID, &rule.SearchText, &rule.ReplaceText, &rule.Description, &rule.Enabled,
			&rule.Position, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan correction rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}
