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

	"github.com/jhoicas/Contenedor-api/docs"
	"github.com/jhoicas/Contenedor-api/internal/application/auth"
	"github.com/jhoicas/Contenedor-api/internal/application/batch"
	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
	infrapdf "github.com/jhoicas/Contenedor-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/Contenedor-api/internal/interfaces/http"
	"github.com/jhoicas/Contenedor-api/pkg/config"
	"github.com/jhoicas/Contenedor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Global:  true,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}
	opts, err := cfg.ProcessingOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("opciones de procesamiento")
	}
	aliases, err := spreadsheet.LoadAliases(cfg.Store.AliasesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("alias de columnas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	txRunner := postgres.NewTxRunner(pool)
	ruleRepo := postgres.NewCorrectionRuleRepository(pool, txRunner)
	batchRepo := postgres.NewBatchRepository(pool, txRunner)

	ruleUC := rules.NewRuleUseCase(ruleRepo)
	batchUC := batch.NewBatchUseCase(
		spreadsheet.NewReader(aliases, processing.NewLogObserver(log)),
		batchRepo,
		ruleUC,
		infrapdf.NewBatchReportGenerator(),
		opts,
		log,
	)
	authUC := auth.NewAuthUseCase(
		auth.Operator{
			Username:     cfg.Auth.OperatorUser,
			PasswordHash: cfg.Auth.OperatorPasswordHash,
			Role:         cfg.Auth.OperatorRole,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if cfg.Auth.OperatorPasswordHash == "" {
		log.Warn().Msg("AUTH_OPERATOR_PASSWORD_HASH vacío: el login queda deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Contenedor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		BatchUC:   batchUC,
		RuleUC:    ruleUC,
		JWTSecret: cfg.JWT.Secret,
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
