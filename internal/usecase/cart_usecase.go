package usecase

import (
	"context"

	"greencart/internal/domain"
)

type CartUsecase struct {
	userRepo    domain.UserRepository
	maxQuantity int
}

func NewCartUsecase(userRepo domain.UserRepository, maxQuantity int) *CartUsecase {
	return &CartUsecase{userRepo: userRepo, maxQuantity: maxQuantity}
}

// Update replaces the stored cart with items and returns what was stored.
// Entries with a non-positive quantity are dropped and oversized lines are
// capped at the maximum, so one bad line never loses the rest of the cart.
// The last write wins.
func (u *CartUsecase) Update(ctx context.Context, userID string, items domain.CartItems) (domain.CartItems, error) {
	cart := items.Normalized().Clamped(u.maxQuantity)
	if err := u.userRepo.SetCartItems(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
