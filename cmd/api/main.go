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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/auth"
	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/inventory"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/cache"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/techinventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/techinventory-api/internal/interfaces/http"
	"github.com/jhoicas/techinventory-api/pkg/config"
	"github.com/jhoicas/techinventory-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// txRunner lo implementan postgres.TxRunner y memory.Store.
type txRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// backend repositorios del almacén elegido por STORE_DRIVER.
type backend struct {
	tx        txRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	audit     repository.AuditRepository
	users     repository.UserRepository
	pinger    httpRouter.Pinger // nil en memoria
	close     func()
}

// snapshotCache caché del snapshot con health check.
type snapshotCache interface {
	catalog.SnapshotCache
	Ping(ctx context.Context) error
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

	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacén")
	}
	defer store.close()

	var snapshots snapshotCache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			// La caché es opcional: sin Redis el snapshot se lee siempre del almacén.
			log.Warn().Err(err).Msg("redis no disponible, snapshot sin caché")
		} else {
			defer rdb.Close()
			snapshots = cache.NewRedisSnapshotCache(rdb, cfg.Redis.SnapshotTTL())
		}
	}

	auditSvc := audit.NewService(store.audit, log)
	catalogUC := catalog.NewUseCase(store.tx, store.products, auditSvc, snapshots, cfg.Inventory.DefaultReorderThreshold, log)
	movementUC := inventory.NewRecordMovementUseCase(store.tx, store.movements, auditSvc, snapshots, log)
	kpiUC := analytics.NewKPIUseCase(catalogUC, cfg.Inventory.DefaultReorderThreshold)
	statisticsUC := analytics.NewStatisticsUseCase(catalogUC)
	reportUC := analytics.NewReportUseCase(catalogUC, infrapdf.NewMarotoReportGenerator(), "Reporte de inventario - "+cfg.App.Name)
	authUC := auth.NewUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Bootstrap.AdminPassword != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin inicial")
		}
		if created {
			log.Info().Str("username", cfg.Bootstrap.AdminUsername).Msg("usuario admin inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (generado con swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "TechInventory API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		MovementUC:   movementUC,
		AuditSvc:     auditSvc,
		KPIUC:        kpiUC,
		StatisticsUC: statisticsUC,
		ReportUC:     reportUC,
		AuthUC:       authUC,
		Health:       httpRouter.NewHealthHandler(cfg.Store.Driver, store.pinger, snapshots),
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}

// openBackend abre Postgres (pool + esquema) o el almacén en memoria según STORE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &backend{
			tx:        s,
			products:  s.Products(),
			movements: s.Movements(),
			audit:     s.Audit(),
			users:     s.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		tx:        postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		audit:     postgres.NewAuditRepository(pool),
		users:     postgres.NewUserRepository(pool),
		pinger:    pool,
		close:     pool.Close,
	}, nil
}
