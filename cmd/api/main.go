package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/cache"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/kafka"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/fieldservice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/fieldservice-api/internal/interfaces/http"
	"github.com/jhoicas/fieldservice-api/pkg/config"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage agrupa los repositorios del driver elegido.
type storage struct {
	txRunner   inventory.TxRunner
	parts      repository.SparePartRepository
	ledger     repository.TransferLogRepository
	audit      repository.AuditRepository
	users      repository.UserRepository
	facilities repository.FacilityRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Directorio de usuarios: repositorio, opcionalmente detrás de Redis.
	var directory ports.UserDirectory = audit.NewRepositoryDirectory(store.users)
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		directory = cache.NewCachedUserDirectory(rdb, directory, cfg.Redis.UserCacheTTL)
		log.Info().Dur("ttl", cfg.Redis.UserCacheTTL).Msg("caché de usuarios en Redis activa")
	}
	auditor := audit.NewWriter(directory, store.audit)

	var publisher inventory.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de traslados activa")
	}

	transferUC := inventory.NewTransferUseCase(store.txRunner, auditor, publisher, inventory.TransferConfig{
		MaxAttempts:    cfg.Transfer.MaxAttempts,
		RetryBaseDelay: cfg.Transfer.RetryBaseDelay,
		MaxRetryDelay:  time.Second,
		Timeout:        cfg.Transfer.Timeout,
	})
	ledgerUC := inventory.NewLedgerUseCase(store.parts, store.ledger, infrapdf.NewMarotoPDFGenerator())
	sparePartUC := usecase.NewSparePartUseCase(store.txRunner, store.parts, auditor)
	facilityUC := usecase.NewFacilityUseCase(store.facilities, auditor)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Field Service Spare Parts API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		SparePartUC: sparePartUC,
		FacilityUC:  facilityUC,
		TransferUC:  transferUC,
		LedgerUC:    ledgerUC,
		Auditor:     auditor,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Eventos de traslado pendientes antes de cerrar el productor Kafka.
	transferUC.Wait()

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		// Sin base de datos no hay directorio externo: se cargan los usuarios de demostración.
		if _, err := seed.Demo(ctx, seed.Repos{Users: s.Users(), Facilities: s.Facilities(), Parts: s.SpareParts()}); err != nil {
			return nil, err
		}
		return &storage{
			txRunner:   s,
			parts:      s.SpareParts(),
			ledger:     s.TransferLog(),
			audit:      s.Audit(),
			users:      s.Users(),
			facilities: s.Facilities(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		txRunner:   postgres.NewTxRunner(pool),
		parts:      postgres.NewSparePartRepository(pool),
		ledger:     postgres.NewTransferLogRepository(pool),
		audit:      postgres.NewAuditRepository(pool),
		users:      postgres.NewUserRepository(pool),
		facilities: postgres.NewFacilityRepository(pool),
		close:      pool.Close,
	}, nil
}
