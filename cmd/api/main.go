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

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/certificate"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/identity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/requests"
	infrapdf "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/infrastructure/pdf"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/infrastructure/postgres"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/infrastructure/storage"
	httpRouter "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/interfaces/http"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/config"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	assignRepo := postgres.NewAssignmentRequestRepository(pool)
	replRepo := postgres.NewReplacementRequestRepository(pool)
	procRepo := postgres.NewDevolutionProcessRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	evidenceStore := storage.NewSupabaseStore(cfg.Storage)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	identityUC := identity.NewUseCase(userRepo, identity.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	assetUC := assets.NewUseCase(txRunner, assetRepo)
	assignmentUC := requests.NewAssignmentUseCase(txRunner, userRepo, assetRepo, assignRepo)
	replacementUC := requests.NewReplacementUseCase(txRunner, assetRepo, replRepo)
	devolutionUC := devolution.NewUseCase(txRunner, procRepo, evidenceStore)
	certUC := certificate.NewUseCase(procRepo, assetRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FijosDN API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IdentityUC:   identityUC,
		AssetUC:      assetUC,
		AssignmentUC: assignmentUC,
		ReplaceUC:    replacementUC,
		DevolutionUC: devolutionUC,
		CertUC:       certUC,
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
