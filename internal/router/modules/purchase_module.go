package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/ecofinds-api/internal/container"
	handlers "github.com/ecofinds/ecofinds-api/internal/interface/http"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

// PurchaseModule wires checkout and history, all behind auth.
// POST /api/purchases, GET /api/purchases/:userId

type PurchaseModule struct {
	Handler *handlers.PurchaseHandler
	JWT     *helpers.JWTManager
}

func NewPurchaseModule(h *handlers.PurchaseHandler, jwt *helpers.JWTManager) *PurchaseModule {
	return &PurchaseModule{Handler: h, JWT: jwt}
}

func (m *PurchaseModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/purchases", m.Handler.Checkout)
		auth.GET("/purchases/:userId", m.Handler.History)
	}
}
