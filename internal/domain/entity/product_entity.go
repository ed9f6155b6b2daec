package entity

import (
	"time"
)

// PlaceholderImage is used when a listing is created without an image URL.
const PlaceholderImage = "https://via.placeholder.com/300x300?text=Product+Image"

// Categories is the closed set of listing categories.
var Categories = []string{
	"electronics", "clothing", "books", "home",
	"sports", "toys", "beauty", "automotive", "other",
}

// Product is a second-hand listing owned by a user.
// Owner is populated on reads that expand the owner reference.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	OwnerID     string    `json:"owner_id"`
	Owner       *Owner    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
