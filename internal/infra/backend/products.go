package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domaincatalog "compramex/internal/domain/catalog"
)

type wireSeller struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia"`
	City     string `json:"city"`
}

type wireProductImage struct {
	ImageURL string `json:"image_url"`
}

type wireProduct struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	PriceMXN      int64              `json:"price_mxn"`
	Colonia       string             `json:"colonia"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	YoutubeURL    string             `json:"youtube_url,omitempty"`
	PrimaryImage  string             `json:"primary_image,omitempty"`
	ProductImages []wireProductImage `json:"product_images,omitempty"`
	Seller        *wireSeller        `json:"seller,omitempty"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     time.Time          `json:"created_at"`
}

type wireCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SearchProducts runs the home-screen search against the hosted catalog.
// All filtering and ranking happens server-side.
func (c *Client) SearchProducts(ctx context.Context, params domaincatalog.SearchParams) ([]domaincatalog.Product, error) {
	params = params.Normalized()
	query := url.Values{}
	if params.Query != "" {
		query.Set("search", params.Query)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.State != "" {
		query.Set("state", params.State)
	}
	if params.City != "" {
		query.Set("city", params.City)
	}
	if params.Colonia != "" {
		query.Set("colonia", params.Colonia)
	}
	if params.MinPrice > 0 {
		query.Set("min_price", strconv.FormatInt(params.MinPrice, 10))
	}
	if params.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatInt(params.MaxPrice, 10))
	}
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("offset", strconv.Itoa(params.Offset))

	var wires []wireProduct
	if err := c.get(ctx, "/products", query, &wires); err != nil {
		return nil, err
	}
	out := make([]domaincatalog.Product, 0, len(wires))
	for _, w := range wires {
		out = append(out, mapProduct(w))
	}
	return out, nil
}

// GetProduct loads one listing. viewerID may be empty for anonymous visits;
// the backend then strips description, gallery, video and seller details.
func (c *Client) GetProduct(ctx context.Context, id, viewerID string) (*domaincatalog.Product, error) {
	query := url.Values{}
	if viewerID != "" {
		query.Set("userId", viewerID)
	}
	var wire wireProduct
	if err := c.get(ctx, "/products/"+url.PathEscape(id), query, &wire); err != nil {
		return nil, err
	}
	product := mapProduct(wire)
	return &product, nil
}

// Categories lists the browsable product groupings.
func (c *Client) Categories(ctx context.Context) ([]domaincatalog.Category, error) {
	var wires []wireCategory
	if err := c.get(ctx, "/categories", nil, &wires); err != nil {
		return nil, err
	}
	out := make([]domaincatalog.Category, 0, len(wires))
	for _, w := range wires {
		out = append(out, domaincatalog.Category{ID: w.ID, Name: w.Name, Slug: w.Slug})
	}
	return out, nil
}

// ListUserProducts returns the seller's own listings for the dashboard,
// inactive ones included.
func (c *Client) ListUserProducts(ctx context.Context, userID string) ([]domaincatalog.Product, error) {
	var wires []wireProduct
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/products", nil, &wires); err != nil {
		return nil, err
	}
	out := make([]domaincatalog.Product, 0, len(wires))
	for _, w := range wires {
		out = append(out, mapProduct(w))
	}
	return out, nil
}

// ProductDraft carries the create/update form payload.
type ProductDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceMXN    int64    `json:"price_mxn"`
	Colonia     string   `json:"colonia"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Category    string   `json:"category"`
	YoutubeURL  string   `json:"youtube_url,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	SellerID    string   `json:"seller_id"`
}

// CreateProduct publishes a new listing for the seller.
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*domaincatalog.Product, error) {
	var wire wireProduct
	if err := c.send(ctx, http.MethodPost, "/products", draft, &wire); err != nil {
		return nil, err
	}
	product := mapProduct(wire)
	return &product, nil
}

// UpdateProduct replaces an existing listing's editable fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft ProductDraft) (*domaincatalog.Product, error) {
	var wire wireProduct
	if err := c.send(ctx, http.MethodPut, "/products/"+url.PathEscape(id), draft, &wire); err != nil {
		return nil, err
	}
	product := mapProduct(wire)
	return &product, nil
}

// DeactivateProduct hides a listing from search without deleting it.
func (c *Client) DeactivateProduct(ctx context.Context, id, sellerID string) error {
	payload := map[string]string{"seller_id": sellerID}
	return c.send(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), payload, nil)
}

type wireSellerStats struct {
	ActiveProducts   int `json:"active_products"`
	Conversations    int `json:"conversations"`
	UnreadMessages   int `json:"unread_messages"`
	MessagesThisWeek int `json:"messages_this_week"`
}

// SellerStats backs the dashboard header cards.
func (c *Client) SellerStats(ctx context.Context, userID string) (domaincatalog.SellerStats, error) {
	var wire wireSellerStats
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/stats", nil, &wire); err != nil {
		return domaincatalog.SellerStats{}, err
	}
	return domaincatalog.SellerStats{
		ActiveProducts:   wire.ActiveProducts,
		Conversations:    wire.Conversations,
		UnreadMessages:   wire.UnreadMessages,
		MessagesThisWeek: wire.MessagesThisWeek,
	}, nil
}

func mapProduct(w wireProduct) domaincatalog.Product {
	product := domaincatalog.Product{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		PriceMXN:     w.PriceMXN,
		Colonia:      w.Colonia,
		City:         w.City,
		State:        w.State,
		YoutubeURL:   w.YoutubeURL,
		PrimaryImage: w.PrimaryImage,
		IsActive:     w.IsActive,
		CreatedAt:    w.CreatedAt,
	}
	for _, img := range w.ProductImages {
		product.Images = append(product.Images, domaincatalog.ProductImage{ImageURL: img.ImageURL})
	}
	if w.Seller != nil {
		product.Seller = &domaincatalog.Seller{
			ID:       w.Seller.ID,
			Nickname: w.Seller.Nickname,
			Colonia:  w.Seller.Colonia,
			City:     w.Seller.City,
		}
	}
	return product
}
