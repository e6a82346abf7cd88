package models

import "time"

// SeasonalDeal is a flagged storefront promotion. Read-mostly: the site
// lists active deals, creation happens through seeding/administration.
type SeasonalDeal struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Discount    string    `json:"discount,omitempty"`
	ValidUntil  string    `json:"validUntil,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
