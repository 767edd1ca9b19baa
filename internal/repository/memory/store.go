// Package memrepo keeps the domain repositories in process memory. It
// mirrors the MongoDB repositories' semantics and backs tests that need a
// working store without a database.
package memrepo

import (
	"sync"
	"time"

	"greencart/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	products  []*domain.Product
	addresses map[string]*domain.Address
	orders    []*domain.Order
	now       func() time.Time
}

func New() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		addresses: make(map[string]*domain.Address),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() domain.UserRepository         { return &userRepo{s} }
func (s *Store) Products() domain.ProductRepository   { return &productRepo{s} }
func (s *Store) Addresses() domain.AddressRepository { return &addressRepo{s} }
func (s *Store) Orders() domain.OrderRepository       { return &orderRepo{s} }

func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return domain.Errorf(domain.ErrInvalidInput, "Invalid id %q", id)
	}
	return nil
}
