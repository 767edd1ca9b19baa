package domain

import (
	"context"
	"time"
)

type Order struct {
	ID          string      `json:"_id"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	Amount      float64     `json:"amount"`
	AddressID   string      `json:"addressId"`
	Address     *Address    `json:"address,omitempty"`
	Status      string      `json:"status"`
	PaymentType string      `json:"paymentType"`
	IsPaid      bool        `json:"isPaid"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

// PlaceOrderRequest is what a customer submits at checkout.
type PlaceOrderRequest struct {
	Items   []OrderItem `json:"items"`
	Address string      `json:"address"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListVisible returns COD or paid orders, newest first; empty userID lists all.
	ListVisible(ctx context.Context, userID string) ([]Order, error)
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
