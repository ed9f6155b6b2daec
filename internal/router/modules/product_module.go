package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/ecofinds-api/internal/container"
	handlers "github.com/ecofinds/ecofinds-api/internal/interface/http"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

// ProductModule wires the listing endpoints.
// Public: GET /api/products, GET /api/products/:id
// Protected: POST/PUT/DELETE /api/products..., POST /api/products/:id/image

type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Handler.Create)
		auth.PUT("/products/:id", m.Handler.Update)
		auth.DELETE("/products/:id", m.Handler.Delete)
		auth.POST("/products/:id/image", m.Handler.UploadImage)
	}
}
