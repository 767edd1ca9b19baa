package domain

import (
	"context"
	"time"
)

type ContextKey string

const (
	UserIDContextKey ContextKey = "userId"
	SellerContextKey ContextKey = "seller"
)

type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profileImage"`
	CartItems    CartItems `json:"cartItems"`
	Wishlist     []string  `json:"wishlist"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the reduced view returned by register and login.
type PublicUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Address struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
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

// ProfileUpdate carries optional profile fields; empty strings keep the stored value.
type ProfileUpdate struct {
	Name         string
	Phone        string
	ProfileImage string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error

	// Cart snapshot, replaced wholesale
	SetCartItems(ctx context.Context, id string, items CartItems) error

	// Wishlist keeps set semantics and insertion order
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

type AddressRepository interface {
	Create(ctx context.Context, addr *Address) error
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	GetByID(ctx context.Context, id, userID string) (*Address, error)
	// Update and Delete match on both id and owner.
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id, userID string) error
}
