package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenedor-api/pkg/config"
)

func TestPoolConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5433, User: "u", Password: "p@ss", DBName: "contenedor", SSLMode: "disable",
		MaxConns: 5, ConnectSecs: 3,
	}
	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, int32(5), pc.MaxConns)
	assert.Equal(t, 3*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLYMinimos(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://a:b@remoto:6543/x?sslmode=require", ForceIPv4: true}
	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "remoto", pc.ConnConfig.Host)
	assert.Equal(t, int32(2), pc.MaxConns, "mínimo de conexiones")
	assert.Equal(t, 10*time.Second, pc.ConnConfig.ConnectTimeout)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://a:b@host:puerto/x"})
	assert.ErrorContains(t, err, "DSN inválido")
}
