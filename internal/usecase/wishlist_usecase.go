package usecase

import (
	"context"

	"greencart/internal/domain"
)

type WishlistUsecase struct {
	userRepo    domain.UserRepository
	productRepo domain.ProductRepository
}

func NewWishlistUsecase(userRepo domain.UserRepository, productRepo domain.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// Get returns the wishlisted products in stored order. Products deleted
// since they were added are skipped.
func (u *WishlistUsecase) Get(ctx context.Context, userID string) ([]domain.Product, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.productRepo.GetByIDs(ctx, user.Wishlist)
}

func (u *WishlistUsecase) Add(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Product id is required")
	}
	if _, err := u.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return u.userRepo.AddToWishlist(ctx, userID, productID)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Product id is required")
	}
	return u.userRepo.RemoveFromWishlist(ctx, userID, productID)
}
