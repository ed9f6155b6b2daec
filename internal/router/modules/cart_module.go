package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/ecofinds-api/internal/container"
	handlers "github.com/ecofinds/ecofinds-api/internal/interface/http"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

// CartModule wires the cart endpoints, all behind auth.
// POST /api/cart, GET /api/cart/:userId, DELETE /api/cart/:userId/:productId

type CartModule struct {
	Handler *handlers.CartHandler
	JWT     *helpers.JWTManager
}

func NewCartModule(h *handlers.CartHandler, jwt *helpers.JWTManager) *CartModule {
	return &CartModule{Handler: h, JWT: jwt}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/cart", m.Handler.Add)
		auth.GET("/cart/:userId", m.Handler.Get)
		auth.DELETE("/cart/:userId/:productId", m.Handler.Remove)
	}
}
