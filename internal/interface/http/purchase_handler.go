package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/response"
)

// PurchaseHandler serves checkout and purchase history.
type PurchaseHandler struct {
	Svc      *application.PurchaseService
	Insights *application.InsightService
	Logger   *logrus.Logger
}

func NewPurchaseHandler(svc *application.PurchaseService, insights *application.InsightService, logger *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{Svc: svc, Insights: insights, Logger: logger}
}

// Checkout POST /api/purchases — snapshots the caller's cart at current
// prices into an immutable purchase and clears the cart.
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	purchase, err := h.Svc.Checkout(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	if h.Insights != nil {
		for _, item := range purchase.Items {
			if _, iErr := h.Insights.RecordSale(c.Request.Context(), item.Category, int64(item.Quantity)); iErr != nil {
				break
			}
		}
	}
	response.Success(c, http.StatusCreated, gin.H{"purchase": purchase}, "Purchase completed successfully", nil)
}

// History GET /api/purchases/:userId — the subject must be the caller.
func (h *PurchaseHandler) History(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	page := atoiDefault(c.Query("page"), 1)
	limit := atoiDefault(c.Query("limit"), application.DefaultPageLimit)

	purchases, meta, summary, err := h.Svc.History(c.Request.Context(), actor, c.Param("userId"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"purchases": purchases, "summary": summary}, "",
		gin.H{"pagination": meta})
}
