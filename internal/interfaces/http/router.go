package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/provenderie/ledger/docs"
	"github.com/provenderie/ledger/internal/application/analytics"
	"github.com/provenderie/ledger/internal/application/auth"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/inventory"
	"github.com/provenderie/ledger/internal/application/report"
	"github.com/provenderie/ledger/internal/application/usecase"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/pkg/jwt"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShopUC           *usecase.ShopUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	SalesUC          *analytics.SalesUseCase
	DashboardUC      *analytics.DashboardUseCase
	ExportUC         *report.ExportUseCase
	AuthUC           *auth.AuthUseCase
	Tokens           *jwt.Signer // nil = sin autenticación
	DefaultShopID    int64
	CSVCharset       string
	Ping             func(context.Context) error // opcional: /health/db
	Log              zerolog.Logger
}

// NewApp crea la app Fiber con recover, request id y log de peticiones.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
			}
			return writeError(c, log, err)
		},
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(log))

	// Swagger UI en /docs, especificación en /docs/swagger.json
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "docs/swagger.json",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	log := deps.Log

	if deps.Ping != nil {
		app.Get("/health/db", func(c *fiber.Ctx) error {
			if err := deps.Ping(c.UserContext()); err != nil {
				log.Error().Err(err).Msg("almacén no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible"})
			}
			return c.JSON(fiber.Map{"status": "ok"})
		})
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token salvo que no haya secreto)
	authMW := OpenAccess()
	if deps.Tokens != nil {
		authMW = AuthMiddleware(deps.Tokens)
	}
	protected := api.Group("/", authMW)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleClerk)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Shops
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC, log)
	shops.Get("/", anyRole, shopHandler.List)
	shops.Post("/", adminOnly, shopHandler.Create)
	shops.Get("/:id", anyRole, shopHandler.GetByID)
	shops.Put("/:id", adminOnly, shopHandler.Rename)
	shops.Delete("/:id", adminOnly, shopHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", anyRole, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Post("/:id/archive", adminOnly, productHandler.Archive)

	// Movements
	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, log)
	movements.Get("/", anyRole, inventoryHandler.ListMovements)
	movements.Post("/", anyRole, inventoryHandler.RegisterMovement)
	movements.Get("/:id", anyRole, inventoryHandler.GetMovement)
	movements.Put("/:id", adminOnly, inventoryHandler.UpdateMovement)

	protected.Post("/inventory/adjust", anyRole, inventoryHandler.Adjust)

	// Stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.DefaultShopID, log)
	stock.Get("/", anyRole, stockHandler.List)
	stock.Get("/low", anyRole, stockHandler.Low)
	stock.Get("/total", anyRole, stockHandler.Total)
	stock.Get("/:product_id", anyRole, stockHandler.Product)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SalesUC, deps.ExportUC, deps.CSVCharset, deps.DefaultShopID, log)
	reports.Get("/sales", anyRole, reportHandler.Sales)
	reports.Get("/stock.csv", anyRole, reportHandler.StockCSV)
	reports.Get("/stock.pdf", anyRole, reportHandler.StockPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.DefaultShopID, log)
	protected.Get("/dashboard", anyRole, dashboardHandler.GetSummary)
}
