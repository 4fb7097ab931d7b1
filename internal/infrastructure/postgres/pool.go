package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/Contenedor-api/pkg/config"
)

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping
// acotado por DB_CONNECT_TIMEOUT_SECONDS.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("postgres: crear pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// poolConfig traduce la configuración de la app sin abrir conexiones.
func poolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("postgres: DSN inválido: %w", err)
	}

	// Un lote guarda cabecera y archivos en una sola transacción; las
	// consultas de lectura son cortas. Pocas conexiones bastan.
	maxConns := int32(cfg.MaxConns)
	if maxConns < 2 {
		maxConns = 2
	}
	pc.MaxConns = maxConns
	pc.MinConns = 1
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 15 * time.Minute
	pc.HealthCheckPeriod = time.Minute
	pc.ConnConfig.ConnectTimeout = connectTimeout(cfg)

	if cfg.ForceIPv4 {
		pc.ConnConfig.DialFunc = dialIPv4
	}

	// NUMERIC <-> decimal.Decimal para los montos de lotes y archivos.
	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

func connectTimeout(cfg config.DBConfig) time.Duration {
	if cfg.ConnectSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.ConnectSecs) * time.Second
}

// dialIPv4 conecta sólo por IPv4; en contenedores sin IPv6 el host puede
// resolver primero a una AAAA inalcanzable.
func dialIPv4(ctx context.Context, _, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp4", addr)
}
