package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/application"
	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	"github.com/ecofinds/ecofinds-api/internal/interface/middleware"
	"github.com/ecofinds/ecofinds-api/pkg/response"
	"github.com/ecofinds/ecofinds-api/pkg/validation"
)

// maxUploadBytes caps listing image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// ProductHandler serves listing CRUD, browse/search, image upload, and
// similar-listing recommendations.
type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type productRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=10,max=1000"`
	Category    string `json:"category" binding:"required,category"`
	// Pointer so a free listing (price 0) passes required.
	Price *float64 `json:"price" binding:"required,gte=0"`
	Image string   `json:"image" binding:"omitempty,url"`
}

func (r productRequest) input() application.ProductInput {
	img := r.Image
	if img == "" {
		img = entity.PlaceholderImage
	}
	return application.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Price:       *r.Price,
		Image:       img,
	}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	actor := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Create(c.Request.Context(), actor, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": p}, "Product created successfully", nil)
}

// List GET /api/products — public browse with category filter, full-text
// search, pagination, and sorting.
func (h *ProductHandler) List(c *gin.Context) {
	q := application.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     atoiDefault(c.Query("page"), 1),
		Limit:    atoiDefault(c.Query("limit"), application.DefaultPageLimit),
		SortBy:   c.DefaultQuery("sortBy", "createdAt"),
		SortAsc:  strings.EqualFold(c.Query("sortOrder"), "asc"),
	}
	items, meta, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": items}, "", gin.H{"pagination": meta})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p}, "", nil)
}

// Update PUT /api/products/:id — owner only.
func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	actor := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), actor, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p}, "Product updated successfully", nil)
}

// Delete DELETE /api/products/:id — owner only.
func (h *ProductHandler) Delete(c *gin.Context) {
	actor := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Product deleted successfully", nil)
}

// UploadImage POST /api/products/:id/image — multipart upload, owner only.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	if file.Size > maxUploadBytes {
		response.Error[any](c, http.StatusBadRequest, "image exceeds the 5MB limit", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unable to read uploaded file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	actor := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), actor, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p}, "Image uploaded successfully", nil)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
