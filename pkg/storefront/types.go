package storefront

import "context"

// User is the session user as returned by the session check. CartItems is
// the persisted cart snapshot.
type User struct {
	ID           string         `json:"_id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	ProfileImage string         `json:"profileImage,omitempty"`
	CartItems    map[string]int `json:"cartItems,omitempty"`
}

type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description []string `json:"description,omitempty"`
	Price       float64  `json:"price"`
	OfferPrice  float64  `json:"offerPrice"`
	Images      []string `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	InStock     bool     `json:"inStock"`
}

type Address struct {
	ID        string `json:"_id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Backend is what the Store needs from the server. Wishlist mutations
// return the server's acknowledgment message.
type Backend interface {
	CheckSession(ctx context.Context) (*User, error)
	CheckSeller(ctx context.Context) (bool, error)
	Products(ctx context.Context) ([]Product, error)
	Wishlist(ctx context.Context) ([]Product, error)
	AddToWishlist(ctx context.Context, productID string) (string, error)
	RemoveFromWishlist(ctx context.Context, productID string) (string, error)
	SyncCart(ctx context.Context, items map[string]int) error
	Logout(ctx context.Context) error
}

// Notifier shows short user-visible acknowledgments.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
