package usecase

import (
	"context"
	"strings"

	"greencart/internal/domain"
	"greencart/pkg/utils"
)

type AddressUsecase struct {
	repo domain.AddressRepository
}

func NewAddressUsecase(repo domain.AddressRepository) *AddressUsecase {
	return &AddressUsecase{repo: repo}
}

func (u *AddressUsecase) Add(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	addr.ID = ""
	addr.UserID = userID
	if err := validateAddress(&addr); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Update replaces an address the caller owns; ownership is enforced by the
// repository filter.
func (u *AddressUsecase) Update(ctx context.Context, userID, id string, addr domain.Address) (*domain.Address, error) {
	if id == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Address id is required")
	}
	addr.ID = id
	addr.UserID = userID
	if err := validateAddress(&addr); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Address id is required")
	}
	return u.repo.Delete(ctx, id, userID)
}

func validateAddress(a *domain.Address) error {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Email = utils.NormalizeEmail(a.Email)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Zipcode = strings.TrimSpace(a.Zipcode)
	a.Country = strings.TrimSpace(a.Country)
	a.Phone = strings.TrimSpace(a.Phone)

	required := []string{a.FirstName, a.LastName, a.Street, a.City, a.State, a.Zipcode, a.Country, a.Phone}
	for _, v := range required {
		if v == "" {
			return domain.Errorf(domain.ErrInvalidInput, "Missing address details")
		}
	}
	if a.Email != "" && !utils.IsEmail(a.Email) {
		return domain.Errorf(domain.ErrInvalidInput, "Please enter a valid email")
	}
	return nil
}
