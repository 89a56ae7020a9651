package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"compramex/internal/app/dto"
	"compramex/internal/infra/backend"
)

var validate = validator.New()

// DashboardHandler serves the seller's own-products screens and stats.
type DashboardHandler struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

type productForm struct {
	Title       string   `json:"title" validate:"required,min=4,max=120"`
	Description string   `json:"description" validate:"max=4000"`
	PriceMXN    int64    `json:"price_mxn" validate:"required,gt=0"`
	Colonia     string   `json:"colonia" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	YoutubeURL  string   `json:"youtube_url" validate:"omitempty,url"`
	ImageURLs   []string `json:"image_urls" validate:"max=5,dive,url"`
}

func (h DashboardHandler) ListProducts(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	products, err := h.Backend.ListUserProducts(c.Request.Context(), p.Identity.ID)
	if err != nil {
		h.respondBackendError(c, err, "list own products", p.Identity.ID)
		return
	}
	c.JSON(http.StatusOK, dto.MapProducts(products))
}

func (h DashboardHandler) CreateProduct(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	form, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	product, err := h.Backend.CreateProduct(c.Request.Context(), draftFromForm(form, p.Identity.ID))
	if err != nil {
		h.respondBackendError(c, err, "create product", p.Identity.ID)
		return
	}
	c.JSON(http.StatusCreated, dto.MapProduct(*product))
}

func (h DashboardHandler) UpdateProduct(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	form, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	product, err := h.Backend.UpdateProduct(c.Request.Context(), productID, draftFromForm(form, p.Identity.ID))
	if err != nil {
		h.respondBackendError(c, err, "update product", p.Identity.ID)
		return
	}
	c.JSON(http.StatusOK, dto.MapProduct(*product))
}

func (h DashboardHandler) DeactivateProduct(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	if err := h.Backend.DeactivateProduct(c.Request.Context(), productID, p.Identity.ID); err != nil {
		h.respondBackendError(c, err, "deactivate product", p.Identity.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h DashboardHandler) Stats(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	stats, err := h.Backend.SellerStats(c.Request.Context(), p.Identity.ID)
	if err != nil {
		h.respondBackendError(c, err, "load stats", p.Identity.ID)
		return
	}
	c.JSON(http.StatusOK, dto.MapSellerStats(stats))
}

func (h DashboardHandler) bindProductForm(c *gin.Context) (productForm, bool) {
	var form productForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return productForm{}, false
	}
	if err := validate.Struct(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return productForm{}, false
	}
	return form, true
}

func draftFromForm(form productForm, sellerID string) backend.ProductDraft {
	return backend.ProductDraft{
		Title:       form.Title,
		Description: form.Description,
		PriceMXN:    form.PriceMXN,
		Colonia:     form.Colonia,
		City:        form.City,
		State:       form.State,
		Category:    form.Category,
		YoutubeURL:  form.YoutubeURL,
		ImageURLs:   form.ImageURLs,
		SellerID:    sellerID,
	}
}

func (h DashboardHandler) respondBackendError(c *gin.Context, err error, op, userID string) {
	if errors.Is(err, backend.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if h.Logger != nil {
		h.Logger.Error("dashboard proxy failed", "op", op, "user_id", userID, "error", err)
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "catalog service unavailable"})
}
