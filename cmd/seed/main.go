// seed aplica el esquema y carga datos de demostración; imprime un token Bearer por rol.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/fieldservice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/seed"
	"github.com/jhoicas/fieldservice-api/pkg/config"
	"github.com/jhoicas/fieldservice-api/pkg/jwt"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	res, err := seed.Demo(ctx, seed.Repos{
		Users:      postgres.NewUserRepository(pool),
		Facilities: postgres.NewFacilityRepository(pool),
		Parts:      postgres.NewSparePartRepository(pool),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar datos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Empresa %s, sede %s, repuesto %s\n", seed.DemoCompanyID, res.FacilityID, res.PartID)
	if err := printTokens(cfg, res); err != nil {
		fmt.Fprintf(os.Stderr, "Generar tokens: %v\n", err)
		os.Exit(1)
	}
}

func printTokens(cfg *config.Config, res *seed.Result) error {
	if cfg.JWT.Secret == "" {
		fmt.Println("JWT_SECRET vacío: no se generan tokens")
		return nil
	}
	for _, u := range res.Users {
		tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
			UserID: u.ID, CompanyID: u.CompanyID, Role: u.Role, Name: u.Name,
		}, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s Bearer %s\n", u.Role, tok)
	}
	return nil
}
