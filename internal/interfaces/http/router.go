package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	SalesUC     *sales.SalesUseCase
	ReportUC    *reports.ReportUseCase
	UserUC      *usecase.UserUseCase
	JWTSecret   string
	JWTIssuer   string
	DebugTokens bool // habilita /api/debug/token (fuera de producción)
}

// NewApp crea la aplicación Fiber con el manejo de errores y los middlewares comunes.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(RequestLogger(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authn := OptionalAuth(deps.JWTSecret, deps.JWTIssuer)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": c.App().Config().AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registro", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	debugHandler := NewDebugHandler(deps.JWTSecret, deps.JWTIssuer, deps.DebugTokens)
	api.Get("/debug/token", debugHandler.Token)

	// Productos: lectura pública, escritura admin (403 para cualquier otro, anónimo incluido)
	products := api.Group("/productos", authn)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRoleFor(access.PermProductCreate), productHandler.Create)
	products.Put("/:id", RequireRoleFor(access.PermProductUpdate), productHandler.Update)
	products.Delete("/:id", RequireRoleFor(access.PermProductDelete), productHandler.Delete)
	products.Get("/:id/movimientos", RequirePermission(access.PermProductUpdate), productHandler.Movements)

	// Ventas. Las rutas de resumen van antes de /:fecha.
	ventas := api.Group("/ventas", authn)
	saleHandler := NewSaleHandler(deps.SalesUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsOnly := RequirePermission(access.PermSaleReports)
	ventas.Get("/resumen/diario", reportsOnly, reportHandler.DailySummary)
	ventas.Get("/resumen/diario/pdf", reportsOnly, reportHandler.DailySummaryPDF)
	ventas.Get("/resumen/diario/xlsx", reportsOnly, reportHandler.DailySummaryXLSX)
	ventas.Post("/", RequirePermission(access.PermSaleCreate), saleHandler.Create)
	ventas.Get("/", RequirePermission(access.PermSaleList), saleHandler.List)
	ventas.Put("/:id/completar", RequirePermission(access.PermSaleComplete), saleHandler.Complete)
	ventas.Put("/:id/cancelar", RequirePermission(access.PermSaleCancel), saleHandler.Cancel)
	ventas.Get("/:fecha", reportsOnly, saleHandler.ListByDate)

	// Usuarios (admin)
	users := api.Group("/usuarios", authn, RequirePermission(access.PermUserManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/activar", userHandler.Activate)
	users.Put("/:id/desactivar", userHandler.Deactivate)
}
