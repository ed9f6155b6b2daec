package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecofinds/ecofinds-api/internal/container"
	handlers "github.com/ecofinds/ecofinds-api/internal/interface/http"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

// InsightModule wires the heuristic helper endpoints under /api/ai.
// Public: POST price-suggest, GET recommendations/:productId, GET impact-summary
// Protected: POST impact-update

type InsightModule struct {
	Handler *handlers.InsightHandler
	JWT     *helpers.JWTManager
}

func NewInsightModule(h *handlers.InsightHandler, jwt *helpers.JWTManager) *InsightModule {
	return &InsightModule{Handler: h, JWT: jwt}
}

func (m *InsightModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/ai/price-suggest", publicLimiter, m.Handler.SuggestPrice)
	rg.GET("/ai/recommendations/:productId", publicLimiter, m.Handler.Recommend)
	rg.GET("/ai/impact-summary", publicLimiter, m.Handler.ImpactSummary)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/ai/impact-update", m.Handler.ImpactUpdate)
	}
}
