package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/response"
	"github.com/ecofinds/ecofinds-api/pkg/validation"
)

// CartHandler serves the per-user shopping cart.
type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// Add POST /api/cart — adds to the caller's own cart, merging quantities
// into an existing line for the same product.
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	actor := c.GetString(middleware.CtxUserIDKey)
	cart, err := h.Svc.Add(c.Request.Context(), actor, req.ProductID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart}, "Product added to cart", nil)
}

// Get GET /api/cart/:userId — the subject must be the caller. A user
// without a cart gets the empty shape, not a 404.
func (h *CartHandler) Get(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	cart, err := h.Svc.Get(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart}, "", nil)
}

// Remove DELETE /api/cart/:userId/:productId
func (h *CartHandler) Remove(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	cart, err := h.Svc.Remove(c.Request.Context(), actor, c.Param("userId"), c.Param("productId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cart": cart}, "Product removed from cart", nil)
}
