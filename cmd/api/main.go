package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	infrapdf "github.com/jhoicas/daily-report-api/internal/infrastructure/pdf"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/daily-report-api/internal/interfaces/http"
	"github.com/jhoicas/daily-report-api/internal/telemetry"
	"github.com/jhoicas/daily-report-api/pkg/config"
	"github.com/jhoicas/daily-report-api/pkg/jwt"
	"github.com/jhoicas/daily-report-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry, log)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	salesPersonRepo := postgres.NewSalesPersonRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	accessPolicy := policy.NewAccessPolicy(salesPersonRepo)

	tokens, err := jwt.NewService(jwt.Config{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	authUC := auth.NewAuthUseCase(salesPersonRepo, tokens)
	reportUC := usecase.NewReportUseCase(
		txRunner, reportRepo, commentRepo, customerRepo,
		accessPolicy, infrapdf.NewReportPDFGenerator(),
	)
	commentUC := usecase.NewCommentUseCase(reportRepo, commentRepo, accessPolicy)
	salesPersonUC := usecase.NewSalesPersonUseCase(salesPersonRepo, accessPolicy)
	customerUC := usecase.NewCustomerUseCase(customerRepo, accessPolicy)

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Daily Report API",
		}))
	}

	httpRouter.RegisterOps(app, cfg.App.Name)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ReportUC:      reportUC,
		CommentUC:     commentUC,
		SalesPersonUC: salesPersonUC,
		CustomerUC:    customerUC,
		Tokens:        tokens,
		Accounts:      salesPersonRepo,
		Cookie:        cfg.Cookie,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
