package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/analytics"
	"github.com/provenderie/ledger/internal/application/auth"
	"github.com/provenderie/ledger/internal/application/inventory"
	"github.com/provenderie/ledger/internal/application/report"
	"github.com/provenderie/ledger/internal/application/usecase"
	infrapdf "github.com/provenderie/ledger/internal/infrastructure/pdf"
	"github.com/provenderie/ledger/internal/infrastructure/scheduler"
	"github.com/provenderie/ledger/internal/infrastructure/sqlstore"
	apphttp "github.com/provenderie/ledger/internal/interfaces/http"
	"github.com/provenderie/ledger/pkg/config"
	"github.com/provenderie/ledger/pkg/jwt"
	"github.com/provenderie/ledger/pkg/logger"
)

// App raíz de composición: almacén abierto y casos de uso cableados.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlstore.DB

	Shops     *usecase.ShopUseCase
	Products  *usecase.ProductUseCase
	Movements *inventory.RegisterMovementUseCase
	Stock     *inventory.StockUseCase
	Sales     *analytics.SalesUseCase
	Dashboard *analytics.DashboardUseCase
	Export    *report.ExportUseCase
	Auth      *auth.AuthUseCase // nil sin JWT_SECRET
	Tokens    *jwt.Signer       // nil sin JWT_SECRET
}

// Build abre el almacén, aplica las migraciones y construye los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if !report.ValidEncoding(cfg.Export.Encoding) {
		return nil, fmt.Errorf("config: EXPORT_ENCODING desconocido %q", cfg.Export.Encoding)
	}
	if cfg.Ledger.DefaultShopID <= 0 {
		return nil, fmt.Errorf("config: LEDGER_DEFAULT_SHOP_ID debe ser positivo")
	}

	db, err := sqlstore.Open(ctx, cfg.DB, sqlstore.WithLogger(log.Component("sqlstore")))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	shopRepo := sqlstore.NewShopRepository(db)
	productRepo := sqlstore.NewProductRepository(db)
	movementRepo := sqlstore.NewMovementRepository(db)
	stockRepo := sqlstore.NewStockRepository(db)
	salesRepo := sqlstore.NewSalesRepository(db)

	opts := []inventory.Option{
		inventory.WithDefaultShop(cfg.Ledger.DefaultShopID),
		inventory.WithLogger(log.Component("ledger")),
	}
	if cfg.Ledger.AllowMovementEdit {
		opts = append(opts, inventory.WithEditor(movementRepo))
		log.Warn().Msg("corrección de movimientos habilitada (LEDGER_ALLOW_MOVEMENT_EDIT)")
	}

	salesUC := analytics.NewSalesUseCase(salesRepo)
	a := &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Shops:     usecase.NewShopUseCase(shopRepo),
		Products:  usecase.NewProductUseCase(productRepo),
		Movements: inventory.NewRegisterMovementUseCase(movementRepo, productRepo, stockRepo, opts...),
		Stock:     inventory.NewStockUseCase(stockRepo, productRepo),
		Sales:     salesUC,
		Dashboard: analytics.NewDashboardUseCase(stockRepo, shopRepo, salesUC),
		Export:    report.NewExportUseCase(stockRepo, shopRepo, infrapdf.NewMarotoPDFGenerator(), cfg.Export.Encoding),
	}
	if cfg.JWT.Secret != "" {
		signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		a.Tokens = signer
		a.Auth = auth.NewAuthUseCase(auth.CodeHashes{Admin: cfg.Auth.AdminCodeHash, Clerk: cfg.Auth.ClerkCodeHash}, signer)
		if cfg.Auth.AdminCodeHash == "" && cfg.Auth.ClerkCodeHash == "" {
			log.Warn().Msg("JWT_SECRET definido sin códigos de acceso: nadie podrá iniciar sesión")
		}
	}
	return a, nil
}

// Close libera el almacén.
func (a *App) Close() error {
	return a.DB.Close()
}

// HTTP construye la app Fiber con todas las rutas.
func (a *App) HTTP() *fiber.App {
	log := a.Log.Component("http")
	app := apphttp.NewApp(a.Config.App.Name, log)
	apphttp.Router(app, apphttp.RouterDeps{
		ShopUC:           a.Shops,
		ProductUC:        a.Products,
		RegisterMovement: a.Movements,
		StockUC:          a.Stock,
		SalesUC:          a.Sales,
		DashboardUC:      a.Dashboard,
		ExportUC:         a.Export,
		AuthUC:           a.Auth,
		Tokens:           a.Tokens,
		DefaultShopID:    a.Config.Ledger.DefaultShopID,
		CSVCharset:       a.Config.Export.Encoding,
		Ping:             a.DB.Ping,
		Log:              log,
	})
	return app
}

// Scheduler construye la agenda de trabajos sobre la tienda por defecto.
func (a *App) Scheduler() (*scheduler.Scheduler, error) {
	return scheduler.New(a.Config.Scheduler, a.Config.Ledger.DefaultShopID, a.Stock, a.Export, a.Log.Component("scheduler"))
}
