// Package bolt guarda las reglas de corrección del CLI en un archivo bbolt local.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/domain/repository"
)

const rulesBucket = "correction_rules"

var _ repository.CorrectionRuleRepository = (*RuleStore)(nil)

// RuleStore implementa CorrectionRuleRepository sobre bbolt.
type RuleStore struct {
	db *bbolt.DB
}

type ruleRecord struct {
	ID          string    `json:"id"`
	SearchText  string    `json:"search_text"`
	ReplaceText string    `json:"replace_text"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Open abre (o crea) el archivo y el bucket de reglas.
func Open(path string) (*RuleStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: abrir %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rulesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: crear bucket: %w", err)
	}
	return &RuleStore{db: db}, nil
}

// Close cierra el archivo.
func (s *RuleStore) Close() error { return s.db.Close() }

// Create guarda una regla nueva; falla si el ID ya existe.
func (s *RuleStore) Create(_ context.Context, rule *entity.CorrectionRule) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(rulesBucket))
		if b.Get([]byte(rule.ID)) != nil {
			return fmt.Errorf("bolt: la regla %s ya existe: %w", rule.ID, domain.ErrInvalidInput)
		}
		return put(b, rule)
	})
}

// CreateAll guarda las reglas en una sola transacción de bbolt.
func (s *RuleStore) CreateAll(_ context.Context, rules []*entity.CorrectionRule) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(rulesBucket))
		for _, rule := range rules {
			if b.Get([]byte(rule.ID)) != nil {
				return fmt.Errorf("bolt: la regla %s ya existe: %w", rule.ID, domain.ErrInvalidInput)
			}
			if err := put(b, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update reemplaza una regla existente.
func (s *RuleStore) Update(_ context.Context, rule *entity.CorrectionRule) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(rulesBucket))
		if b.Get([]byte(rule.ID)) == nil {
			return fmt.Errorf("bolt: regla %s: %w", rule.ID, domain.ErrNotFound)
		}
		return put(b, rule)
	})
}

// Delete elimina una regla.
func (s *RuleStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(rulesBucket))
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("bolt: regla %s: %w", id, domain.ErrNotFound)
		}
		return b.Delete([]byte(id))
	})
}

// GetByID devuelve nil, nil si la regla no existe.
func (s *RuleStore) GetByID(_ context.Context, id string) (*entity.CorrectionRule, error) {
	var out *entity.CorrectionRule
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(rulesBucket)).Get([]byte(id))
		if data == nil {
			return nil
		}
		r, err := decode(data)
		out = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve las reglas por Position (y fecha de creación en empate).
func (s *RuleStore) List(_ context.Context) ([]*entity.CorrectionRule, error) {
	list := make([]*entity.CorrectionRule, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(rulesBucket)).ForEach(func(_, v []byte) error {
			r, err := decode(v)
			if err != nil {
				return err
			}
			list = append(list, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func put(b *bbolt.Bucket, r *entity.CorrectionRule) error {
	data, err := json.Marshal(ruleRecord{
		ID: r.ID, SearchText: r.SearchText, ReplaceText: r.ReplaceText, Description: r.Description,
		Enabled: r.Enabled, Position: r.Position, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bolt: serializar regla: %w", err)
	}
	return b.Put([]byte(r.ID), data)
}

func decode(data []byte) (*entity.CorrectionRule, error) {
	var rec ruleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("bolt: regla corrupta: %w", err)
	}
	return &entity.CorrectionRule{
		ID: rec.ID, SearchText: rec.SearchText, ReplaceText: rec.ReplaceText, Description: rec.Description,
		Enabled: rec.Enabled, Position: rec.Position, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
	}, nil
}
