package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/bolt"
)

func openStore(t *testing.T) *bolt.RuleStore {
	t.Helper()
	s, err := bolt.Open(filepath.Join(t.TempDir(), "reglas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRuleStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	r := &entity.CorrectionRule{ID: "r1", SearchText: "A", ReplaceText: "B", Enabled: true, Position: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Create(ctx, r))
	assert.ErrorIs(t, s.Create(ctx, r), domain.ErrInvalidInput, "ID duplicado")

	got, err := s.GetByID(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.SearchText)
	assert.True(t, got.CreatedAt.Equal(now))

	r.ReplaceText = "C"
	r.Enabled = false
	require.NoError(t, s.Update(ctx, r))
	got, err = s.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "C", got.ReplaceText)
	assert.False(t, got.Enabled)

	require.NoError(t, s.Delete(ctx, "r1"))
	got, err = s.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, s.Delete(ctx, "r1"), domain.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, r), domain.ErrNotFound)
}

// Si una regla falla no queda ninguna del lote.
func TestRuleStore_CreateAllTodoONada(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Create(ctx, &entity.CorrectionRule{ID: "existe", SearchText: "A", ReplaceText: "B", Enabled: true}))

	err := s.CreateAll(ctx, []*entity.CorrectionRule{
		{ID: "nueva-1", SearchText: "C", ReplaceText: "D", Enabled: true, Position: 1},
		{ID: "existe", SearchText: "E", ReplaceText: "F", Enabled: true, Position: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := s.GetByID(ctx, "nueva-1")
	require.NoError(t, err)
	assert.Nil(t, got, "la primera regla del lote no se guarda")
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.CreateAll(ctx, []*entity.CorrectionRule{
		{ID: "nueva-1", SearchText: "C", ReplaceText: "D", Enabled: true, Position: 1},
		{ID: "nueva-2", SearchText: "E", ReplaceText: "F", Enabled: true, Position: 2},
	}))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRuleStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Los IDs están en orden inverso a Position para que el orden de bbolt no coincida.
	require.NoError(t, s.Create(ctx, &entity.CorrectionRule{ID: "a", Position: 3, CreatedAt: base}))
	require.NoError(t, s.Create(ctx, &entity.CorrectionRule{ID: "b", Position: 1, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Create(ctx, &entity.CorrectionRule{ID: "c", Position: 1, CreatedAt: base}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestRuleStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reglas.db")

	s, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, &entity.CorrectionRule{ID: "x", SearchText: "S", ReplaceText: "R", Enabled: true}))
	require.NoError(t, s.Close())

	s, err = bolt.Open(path)
	require.NoError(t, err)
	defer s.Close()
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Active())
}
