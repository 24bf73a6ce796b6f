package api

import (
	"invoice-recon/docs"
	"invoice-recon/internal/api/handlers"
	"invoice-recon/pkg/auth"
	"invoice-recon/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	searchHandler *handlers.SearchHandler,
	reconcileHandler *handlers.ReconcileHandler,
	invoiceHandler *handlers.InvoiceHandler,
	statusHandler *handlers.StatusHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger docs are registered by the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Public routes
	app.Get("/status", statusHandler.Status)

	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/products/search", searchHandler.SearchProducts)
	protected.Post("/reconcile", reconcileHandler.Reconcile)
	protected.Post("/resolve", reconcileHandler.Resolve)
	protected.Get("/invoices/search", invoiceHandler.SearchInvoices)
	protected.Post("/catalog/reload", statusHandler.ReloadCatalog)

	return app
}
