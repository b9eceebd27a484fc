package models

import "time"

// GalleryImage is a portfolio image shown on the public site.
type GalleryImage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AltText   string    `json:"alt_text"`
	ObjectKey string    `json:"object_key"`
	PublicURL string    `json:"public_url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// PricingTier is a single row on the pricing page.
type PricingTier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	PriceLabel  string `json:"price_label"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// Experience is a bespoke experience package.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	PriceLabel  string `json:"price_label"`
	Position    int    `json:"position"`
}

// ContentBlock is an editable text block keyed by page section.
type ContentBlock struct {
	Key       string    `json:"key"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
