package usecase

import (
	"context"
	"testing"

	"greencart/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAddress() domain.Address {
	return domain.Address{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Street:    "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		Zipcode:   "N1",
		Country:   "UK",
		Phone:     "0123",
	}
}

func TestAddressUsecase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := NewAddressUsecase(newMockAddressRepo())

	addr, err := uc.Add(ctx, "user1", sampleAddress())
	require.NoError(t, err)
	assert.Equal(t, "user1", addr.UserID)

	list, err := uc.List(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	changed := sampleAddress()
	changed.City = "Cambridge"
	updated, err := uc.Update(ctx, "user1", addr.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Cambridge", updated.City)

	require.NoError(t, uc.Delete(ctx, "user1", addr.ID))
	list, err = uc.List(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddressUsecase_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	uc := NewAddressUsecase(newMockAddressRepo())
	addr, err := uc.Add(ctx, "owner", sampleAddress())
	require.NoError(t, err)

	_, err = uc.Update(ctx, "intruder", addr.ID, sampleAddress())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "intruder", addr.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, "intruder")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddressUsecase_Validation(t *testing.T) {
	uc := NewAddressUsecase(newMockAddressRepo())

	missing := sampleAddress()
	missing.City = "  "
	_, err := uc.Add(context.Background(), "u", missing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badEmail := sampleAddress()
	badEmail.Email = "ada-at-example"
	_, err = uc.Add(context.Background(), "u", badEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "u", "", sampleAddress())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
