package router

import (
	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/internal/container"
	pginfra "github.com/ecofinds/ecofinds-api/internal/infrastructure/postgres"
	handlers "github.com/ecofinds/ecofinds-api/internal/interface/http"
	"github.com/ecofinds/ecofinds-api/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	cartRepo := pginfra.NewCartRepository(pool)
	purchaseRepo := pginfra.NewPurchaseRepository(pool)

	userSvc := application.NewUserService(userRepo, jwt, rdb, logger, container.GetRabbitPub(), cfg.MailSendEnabled)
	catalogSvc := application.NewCatalogService(productRepo, logger, container.GetES(), cfg.ESProductsIndex, container.GetGCS(), cfg.GCSBucket)
	cartSvc := application.NewCartService(cartRepo, productRepo, logger)
	purchaseSvc := application.NewPurchaseService(purchaseRepo, userRepo, logger, container.GetRabbitPub(), cfg.MailSendEnabled)
	insightSvc := application.NewInsightService(rdb, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(catalogSvc, logger), jwt))
	r.Add(modules.NewCartModule(handlers.NewCartHandler(cartSvc, logger), jwt))
	r.Add(modules.NewPurchaseModule(handlers.NewPurchaseHandler(purchaseSvc, insightSvc, logger), jwt))
	r.Add(modules.NewInsightModule(handlers.NewInsightHandler(insightSvc, catalogSvc, logger), jwt))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
