package catalog

import "time"

// Seller is the public slice of a user profile attached to a product.
type Seller struct {
	ID       string
	Nickname string
	Colonia  string
	City     string
}

// ProductImage is one gallery entry; the backend stores URLs only.
type ProductImage struct {
	ImageURL string
}

// Product is a classified listing. Anonymous viewers receive only the
// public subset: title, price, location and the primary image. Description,
// gallery, video and seller details require a signed-in viewer.
type Product struct {
	ID           string
	Title        string
	Description  string
	PriceMXN     int64
	Colonia      string
	City         string
	State        string
	YoutubeURL   string
	PrimaryImage string
	Images       []ProductImage
	Seller       *Seller
	IsActive     bool
	CreatedAt    time.Time
}

// SearchParams mirror the home-screen filters; filtering itself is done by
// the hosted search API, never locally.
type SearchParams struct {
	Query    string
	Category string
	State    string
	City     string
	Colonia  string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

// Normalized clamps paging to the backend's accepted window.
func (p SearchParams) Normalized() SearchParams {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Category is a browsable product grouping.
type Category struct {
	ID   string
	Name string
	Slug string
}

// SellerStats backs the dashboard header cards.
type SellerStats struct {
	ActiveProducts   int
	Conversations    int
	UnreadMessages   int
	MessagesThisWeek int
}
