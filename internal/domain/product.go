package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description []string  `json:"description"`
	Price       float64   `json:"price"`
	OfferPrice  float64   `json:"offerPrice"`
	Images      []string  `json:"image"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProduct is the seller's input for a product listing.
type NewProduct struct {
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Price       float64  `json:"price"`
	OfferPrice  float64  `json:"offerPrice"`
	Category    string   `json:"category"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetByIDs returns products in the order of ids, skipping unknown ones.
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	SetStock(ctx context.Context, id string, inStock bool) error
}
