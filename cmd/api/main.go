package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/facturio/facturio-api/docs"
	appanalytics "github.com/facturio/facturio-api/internal/application/analytics"
	"github.com/facturio/facturio-api/internal/application/billing"
	"github.com/facturio/facturio-api/internal/application/tenant"
	"github.com/facturio/facturio-api/internal/application/usecase"
	"github.com/facturio/facturio-api/internal/infrastructure/postgres"
	"github.com/facturio/facturio-api/internal/infrastructure/supabase"
	httpRouter "github.com/facturio/facturio-api/internal/interfaces/http"
	"github.com/facturio/facturio-api/pkg/config"
	"github.com/facturio/facturio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrations").Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	verifier, err := supabase.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de identidad")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := tenant.NewResolver(userRepo, txRunner, time.Duration(cfg.Tenant.CacheTTLMinutes)*time.Minute)
	clientUC := billing.NewClientUseCase(clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, clientRepo, billing.NewInvoiceIssuer())
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	settingsUC := usecase.NewSettingsUseCase(userRepo, companyRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowMethods:     "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: len(cfg.HTTP.CORSOrigins) > 0,
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturio API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		spec, err := docs.JSON()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(spec)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Verifier:  verifier,
		Resolver:  resolver,
		ClientUC:  clientUC,
		InvoiceUC: invoiceUC,
		Dashboard: dashboardUC,
		Settings:  settingsUC,
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
