package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"compramex/internal/app/dto"
	domaincatalog "compramex/internal/domain/catalog"
	"compramex/internal/infra/backend"
	"compramex/internal/infra/btc"
)

// CatalogHandler serves the home and product-detail screens. Search and
// filtering are delegated wholesale to the hosted catalog API.
type CatalogHandler struct {
	Backend   *backend.Client
	Converter *btc.Converter
	Contactor Contactor
	Logger    *slog.Logger
}

// Contactor starts (or resumes) a buyer->seller thread about a product.
type Contactor interface {
	Contact(c *gin.Context, productID, buyerID, sellerID string)
}

func (h CatalogHandler) Search(c *gin.Context) {
	params := domaincatalog.SearchParams{
		Query:    c.Query("search"),
		Category: c.Query("category"),
		State:    c.Query("state"),
		City:     c.Query("city"),
		Colonia:  c.Query("colonia"),
		MinPrice: parseInt64(c.Query("min_price")),
		MaxPrice: parseInt64(c.Query("max_price")),
		Limit:    parseIntWithDefault(c.Query("limit"), 20),
		Offset:   parseInt(c.Query("offset")),
	}.Normalized()

	products, err := h.Backend.SearchProducts(c.Request.Context(), params)
	if err != nil {
		h.respondBackendError(c, err, "search products")
		return
	}
	c.JSON(http.StatusOK, dto.ProductList{
		Items:  dto.MapProducts(products),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

func (h CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.Backend.Categories(c.Request.Context())
	if err != nil {
		h.respondBackendError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, dto.MapCategories(categories))
}

func (h CatalogHandler) Get(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	viewerID := ""
	if p, ok := currentPrincipal(c); ok {
		viewerID = p.Identity.ID
	}
	product, err := h.Backend.GetProduct(c.Request.Context(), productID, viewerID)
	if err != nil {
		h.respondBackendError(c, err, "load product")
		return
	}
	c.JSON(http.StatusOK, dto.MapProduct(*product))
}

func (h CatalogHandler) BitcoinQuote(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	product, err := h.Backend.GetProduct(c.Request.Context(), productID, "")
	if err != nil {
		h.respondBackendError(c, err, "load product for quote")
		return
	}
	c.JSON(http.StatusOK, dto.MapBitcoinQuote(h.Converter.QuoteMXN(product.PriceMXN)))
}

// Contact starts the buyer<->seller conversation for a product and mounts
// its view. The hosted API deduplicates, so pressing the button twice lands
// in the same thread.
func (h CatalogHandler) Contact(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}
	product, err := h.Backend.GetProduct(c.Request.Context(), productID, p.Identity.ID)
	if err != nil {
		h.respondBackendError(c, err, "load product for contact")
		return
	}
	if product.Seller == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "seller unavailable"})
		return
	}
	if product.Seller.ID == p.Identity.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot contact yourself"})
		return
	}
	h.Contactor.Contact(c, productID, p.Identity.ID, product.Seller.ID)
}

func (h CatalogHandler) respondBackendError(c *gin.Context, err error, op string) {
	if errors.Is(err, backend.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if h.Logger != nil {
		h.Logger.Error("catalog proxy failed", "op", op, "error", err)
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "catalog service unavailable"})
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseIntWithDefault(raw string, def int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func parseInt64(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
