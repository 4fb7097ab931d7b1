// Package rules administra las reglas de corrección literal persistidas.
package rules

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Contenedor-api/internal/application/dto"
	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/domain/repository"
)

// RuleUseCase CRUD de reglas sobre cualquier repositorio (Postgres o bbolt).
type RuleUseCase struct {
	repo repository.CorrectionRuleRepository
	now  func() time.Time
}

// NewRuleUseCase construye el caso de uso.
func NewRuleUseCase(repo repository.CorrectionRuleRepository) *RuleUseCase {
	return &RuleUseCase{repo: repo, now: time.Now}
}

// Create valida y guarda la regla al final del orden actual.
func (uc *RuleUseCase) Create(ctx context.Context, in dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := NewRule(in, uc.now())
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rule.Position = nextPosition(existing)
	if err := uc.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return ToRuleResponse(rule), nil
}

// Update aplica los campos presentes en in.
func (uc *RuleUseCase) Update(ctx context.Context, id string, in dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	if in.SearchText != nil {
		rule.SearchText = *in.SearchText
	}
	if in.ReplaceText != nil {
		rule.ReplaceText = *in.ReplaceText
	}
	if in.Description != nil {
		rule.Description = strings.TrimSpace(*in.Description)
	}
	if in.Enabled != nil {
		rule.Enabled = *in.Enabled
	}
	if in.Position != nil {
		rule.Position = *in.Position
	}
	if err := validate(rule); err != nil {
		return nil, err
	}
	rule.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return ToRuleResponse(rule), nil
}

// Delete elimina la regla.
func (uc *RuleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Get devuelve ErrNotFound si no existe.
func (uc *RuleUseCase) Get(ctx context.Context, id string) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	return ToRuleResponse(rule), nil
}

// List todas las reglas en orden de aplicación.
func (uc *RuleUseCase) List(ctx context.Context) ([]dto.RuleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToRuleResponse(r))
	}
	return out, nil
}

// Stored reglas persistidas en orden, listas para el pipeline. Las inactivas
// se incluyen; el motor de correcciones las descarta.
func (uc *RuleUseCase) Stored(ctx context.Context) ([]entity.CorrectionRule, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.CorrectionRule, 0, len(list))
	for _, r := range list {
		out = append(out, *r)
	}
	return out, nil
}

// Import lee un archivo YAML de reglas y las agrega al final, en el orden del
// archivo. Se guardan todas o ninguna.
func (uc *RuleUseCase) Import(ctx context.Context, src io.Reader) ([]dto.RuleResponse, error) {
	parsed, err := ParseYAML(src, uc.now())
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	pos := nextPosition(existing)
	batch := make([]*entity.CorrectionRule, len(parsed))
	for i := range parsed {
		parsed[i].Position = pos + i
		batch[i] = &parsed[i]
	}
	if err := uc.repo.CreateAll(ctx, batch); err != nil {
		return nil, fmt.Errorf("rules: importar: %w", err)
	}
	out := make([]dto.RuleResponse, 0, len(batch))
	for _, r := range batch {
		out = append(out, *ToRuleResponse(r))
	}
	return out, nil
}

type ruleFile struct {
	Rules []dto.CreateRuleRequest `yaml:"rules"`
}

// ParseYAML lee reglas con la forma
//
//	rules:
//	  - search: "SS-CUFE "
//	    replace: "SS-CUFE"
//	    description: espacio sobrante
//
// y devuelve entidades nuevas con ID y Position (orden del archivo).
func ParseYAML(src io.Reader, now time.Time) ([]entity.CorrectionRule, error) {
	var f ruleFile
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("rules: YAML inválido: %w: %v", domain.ErrInvalidInput, err)
	}
	out := make([]entity.CorrectionRule, 0, len(f.Rules))
	for i, in := range f.Rules {
		r, err := NewRule(in, now)
		if err != nil {
			return nil, fmt.Errorf("rules: regla %d: %w", i+1, err)
		}
		r.Position = i
		out = append(out, *r)
	}
	return out, nil
}

// NewRule construye una regla nueva habilitada por defecto.
func NewRule(in dto.CreateRuleRequest, now time.Time) (*entity.CorrectionRule, error) {
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	rule := &entity.CorrectionRule{
		ID:          uuid.New().String(),
		SearchText:  in.SearchText,
		ReplaceText: in.ReplaceText,
		Description: strings.TrimSpace(in.Description),
		Enabled:     enabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// validate los textos se guardan tal cual (los espacios son significativos),
// pero ninguno puede ser vacío.
func validate(r *entity.CorrectionRule) error {
	if r.SearchText == "" {
		return fmt.Errorf("el texto a buscar es obligatorio: %w", domain.ErrInvalidInput)
	}
	if r.ReplaceText == "" {
		return fmt.Errorf("el texto de reemplazo es obligatorio: %w", domain.ErrInvalidInput)
	}
	return nil
}

func nextPosition(list []*entity.CorrectionRule) int {
	next := 0
	for _, r := range list {
		if r.Position >= next {
			next = r.Position + 1
		}
	}
	return next
}

// ToRuleResponse convierte la entidad a su DTO.
func ToRuleResponse(r *entity.CorrectionRule) *dto.RuleResponse {
	return &dto.RuleResponse{
		ID:          r.ID,
		SearchText:  r.SearchText,
		ReplaceText: r.ReplaceText,
		Description: r.Description,
		Enabled:     r.Enabled,
		Active:      r.Active(),
		Position:    r.Position,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
