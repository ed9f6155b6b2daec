package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/pkg/response"
	"github.com/ecofinds/ecofinds-api/pkg/validation"
)

// InsightHandler serves the heuristic helpers: price suggestions, similar
// listings, and the sustainability impact counters.
type InsightHandler struct {
	Svc     *application.InsightService
	Catalog *application.CatalogService
	Logger  *logrus.Logger
}

func NewInsightHandler(svc *application.InsightService, catalog *application.CatalogService, logger *logrus.Logger) *InsightHandler {
	return &InsightHandler{Svc: svc, Catalog: catalog, Logger: logger}
}

type priceSuggestRequest struct {
	Category string `json:"category" binding:"required,category"`
	Title    string `json:"title" binding:"required,min=3,max=100"`
}

type impactUpdateRequest struct {
	Category string `json:"category" binding:"required,category"`
	Quantity int64  `json:"quantity" binding:"omitempty,min=1"`
}

// SuggestPrice POST /api/ai/price-suggest
func (h *InsightHandler) SuggestPrice(c *gin.Context) {
	var req priceSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	out := h.Svc.SuggestPrice(req.Category, req.Title)
	response.Success(c, http.StatusOK, gin.H{"suggestion": out}, "", nil)
}

// Recommend GET /api/ai/recommendations/:productId
func (h *InsightHandler) Recommend(c *gin.Context) {
	limit := atoiDefault(c.Query("limit"), 10)
	items, err := h.Catalog.Recommend(c.Request.Context(), c.Param("productId"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": items}, "", nil)
}

// ImpactSummary GET /api/ai/impact-summary
func (h *InsightHandler) ImpactSummary(c *gin.Context) {
	out, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"impact": out}, "", nil)
}

// ImpactUpdate POST /api/ai/impact-update — bumps the counters for one
// sold item.
func (h *InsightHandler) ImpactUpdate(c *gin.Context) {
	var req impactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	out, err := h.Svc.RecordSale(c.Request.Context(), req.Category, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"impact": out}, "Impact updated", nil)
}
