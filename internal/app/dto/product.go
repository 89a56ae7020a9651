package dto

import (
	"time"

	domaincatalog "compramex/internal/domain/catalog"
)

// ProductSeller is the seller block shown to signed-in viewers.
type ProductSeller struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia,omitempty"`
	City     string `json:"city,omitempty"`
}

// ProductImage is one gallery entry.
type ProductImage struct {
	ImageURL string `json:"image_url"`
}

// Product is a catalog listing. Restricted fields are omitted for
// anonymous viewers by the backend, not here.
type Product struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	PriceMXN      int64          `json:"price_mxn"`
	Colonia       string         `json:"colonia"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	YoutubeURL    string         `json:"youtube_url,omitempty"`
	PrimaryImage  string         `json:"primary_image,omitempty"`
	ProductImages []ProductImage `json:"product_images,omitempty"`
	Seller        *ProductSeller `json:"seller,omitempty"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ProductList is a paged search result.
type ProductList struct {
	Items  []Product `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Category is a browsable product grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SellerStats backs the dashboard header cards.
type SellerStats struct {
	ActiveProducts   int `json:"active_products"`
	Conversations    int `json:"conversations"`
	UnreadMessages   int `json:"unread_messages"`
	MessagesThisWeek int `json:"messages_this_week"`
}

// MapProduct converts one catalog listing.
func MapProduct(p domaincatalog.Product) Product {
	out := Product{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PriceMXN:     p.PriceMXN,
		Colonia:      p.Colonia,
		City:         p.City,
		State:        p.State,
		YoutubeURL:   p.YoutubeURL,
		PrimaryImage: p.PrimaryImage,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
	for _, img := range p.Images {
		out.ProductImages = append(out.ProductImages, ProductImage{ImageURL: img.ImageURL})
	}
	if p.Seller != nil {
		out.Seller = &ProductSeller{
			ID:       p.Seller.ID,
			Nickname: p.Seller.Nickname,
			Colonia:  p.Seller.Colonia,
			City:     p.Seller.City,
		}
	}
	return out
}

// MapProducts converts a search page.
func MapProducts(items []domaincatalog.Product) []Product {
	out := make([]Product, 0, len(items))
	for _, item := range items {
		out = append(out, MapProduct(item))
	}
	return out
}

// MapCategories converts the category list.
func MapCategories(items []domaincatalog.Category) []Category {
	out := make([]Category, 0, len(items))
	for _, item := range items {
		out = append(out, Category{ID: item.ID, Name: item.Name, Slug: item.Slug})
	}
	return out
}

// MapSellerStats converts the dashboard stats block.
func MapSellerStats(stats domaincatalog.SellerStats) SellerStats {
	return SellerStats{
		ActiveProducts:   stats.ActiveProducts,
		Conversations:    stats.Conversations,
		UnreadMessages:   stats.UnreadMessages,
		MessagesThisWeek: stats.MessagesThisWeek,
	}
}
