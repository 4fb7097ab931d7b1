package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infradian "github.com/jhoicas/Contenedor-api/internal/infrastructure/dian"
	"github.com/jhoicas/Contenedor-api/pkg/config"
	"github.com/jhoicas/Contenedor-api/pkg/dian"
)

// chdir cambia el directorio de trabajo y lo restaura al terminar el test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "contenedor-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.HTTP.BodyLimitMB)
	assert.True(t, cfg.Output.AbortOnError)
	assert.False(t, cfg.Processing.Strict)

	opts, err := cfg.ProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, dian.ContingencyMarkerDefault, opts.Mutator.ContingencyMarker)
	assert.Equal(t, infradian.LineTypeApply, opts.Mutator.UnknownLineType)
	assert.Equal(t, 1, opts.Workers)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PROCESSING_CONTINGENCY_MARKER", "SS-CUDE")
	t.Setenv("PROCESSING_UNKNOWN_LINE_TYPE", "skip")
	t.Setenv("PROCESSING_STRICT", "true")
	t.Setenv("PROCESSING_WORKERS", "4")
	t.Setenv("PROCESSING_SYNC_HEALTH_DATES", "1")
	t.Setenv("OUTPUT_ABORT_ON_ERROR", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Output.AbortOnError)

	opts, err := cfg.ProcessingOptions()
	require.NoError(t, err)
	assert.Equal(t, "SS-CUDE", opts.Mutator.ContingencyMarker)
	assert.Equal(t, infradian.LineTypeSkip, opts.Mutator.UnknownLineType)
	assert.True(t, opts.Mutator.SyncHealthDates)
	assert.True(t, opts.Strict)
	assert.Equal(t, 4, opts.Workers)
}

func TestProcessingOptions_PoliticaInvalida(t *testing.T) {
	cfg := &config.Config{Processing: config.ProcessingConfig{UnknownLineType: "ignorar"}}
	_, err := cfg.ProcessingOptions()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
