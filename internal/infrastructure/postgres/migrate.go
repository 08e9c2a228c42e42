package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/schema.sql
var schemaSQL string

// schemaLockID clave del advisory lock que serializa migraciones de varias réplicas.
const schemaLockID = 727401

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrate: acquire: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", schemaLockID); err != nil {
		return fmt.Errorf("migrate: lock: %w", err)
	}
	defer func() { _, _ = conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", schemaLockID) }()

	// Sin argumentos pgx usa el protocolo simple y acepta varias sentencias.
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: schema: %w", err)
	}
	log.Info().Msg("esquema de base de datos aplicado")
	return nil
}
