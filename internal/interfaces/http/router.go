package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
	"github.com/jhoicas/daily-report-api/pkg/config"
	"github.com/jhoicas/daily-report-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ReportUC      *usecase.ReportUseCase
	CommentUC     *usecase.CommentUseCase
	SalesPersonUC *usecase.SalesPersonUseCase
	CustomerUC    *usecase.CustomerUseCase
	Tokens        TokenVerifier
	Accounts      AccountLookup
	Cookie        config.CookieConfig
}

// NewApp crea la app Fiber con el manejo de errores y los middlewares comunes.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(log))
	return app
}

// RegisterOps rutas operativas: /health y /metrics (Prometheus).
func RegisterOps(app *fiber.App, serviceName string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Rutas protegidas: token válido y cuenta activa. Se montan por prefijo para que
	// una ruta inexistente bajo /api siga respondiendo 404.
	protected := []fiber.Handler{WithAuth(deps.Tokens), RequireActiveAccount(deps.Accounts)}
	api.Get("/auth/me", append(protected, authHandler.Me)...)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	commentHandler := NewCommentHandler(deps.CommentUC)
	reports := api.Group("/reports", protected...)
	reports.Get("/", reportHandler.List)
	reports.Post("/", reportHandler.Create)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Put("/:id", reportHandler.Update)
	reports.Delete("/:id", reportHandler.Delete)
	reports.Post("/:id/review", reportHandler.Review)
	reports.Get("/:id/pdf", reportHandler.ExportPDF)
	reports.Get("/:id/comments", commentHandler.List)
	reports.Post("/:id/comments", commentHandler.Create)

	// Comments
	api.Delete("/comments/:id", append(protected, commentHandler.Delete)...)

	// Sales persons (solo admin)
	spHandler := NewSalesPersonHandler(deps.SalesPersonUC)
	salesPersons := api.Group("/sales-persons", append(protected, WithAdmin())...)
	salesPersons.Get("/", spHandler.List)
	salesPersons.Post("/", spHandler.Create)
	salesPersons.Get("/:id", spHandler.GetByID)
	salesPersons.Put("/:id", spHandler.Update)
	salesPersons.Delete("/:id", spHandler.Deactivate)

	// Customers: lectura para todos, escritura solo admin
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", protected...)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", WithAdmin(), customerHandler.Create)
	customers.Put("/:id", WithAdmin(), customerHandler.Update)
	customers.Delete("/:id", WithAdmin(), customerHandler.Delete)
}
