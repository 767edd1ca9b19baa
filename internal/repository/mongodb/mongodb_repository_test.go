package mongorepo

import (
	"context"
	"testing"

	"greencart/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectURI(ctx, uri, "greencart_test", 10, 1)
	require.NoError(t, err)
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	products := NewProductRepository(db)
	addresses := NewAddressRepository(db)
	orders := NewOrderRepository(db)

	user := &domain.User{Name: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := users.Create(ctx, &domain.User{Name: "other", Email: "alice@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := users.GetByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = users.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	apple := &domain.Product{Name: "Apple", Price: 3, OfferPrice: 2.5, Category: "Fruits", InStock: true}
	milk := &domain.Product{Name: "Milk", Price: 2, OfferPrice: 1.5, Category: "Dairy", InStock: true}
	require.NoError(t, products.Create(ctx, apple))
	require.NoError(t, products.Create(ctx, milk))

	t.Run("cart snapshot replaces stored cart", func(t *testing.T) {
		require.NoError(t, users.SetCartItems(ctx, user.ID, domain.CartItems{apple.ID: 2}))
		require.NoError(t, users.SetCartItems(ctx, user.ID, domain.CartItems{milk.ID: 1}))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CartItems{milk.ID: 1}, got.CartItems)
	})

	t.Run("wishlist keeps set semantics", func(t *testing.T) {
		require.NoError(t, users.AddToWishlist(ctx, user.ID, milk.ID))
		require.NoError(t, users.AddToWishlist(ctx, user.ID, apple.ID))
		require.NoError(t, users.AddToWishlist(ctx, user.ID, milk.ID))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{milk.ID, apple.ID}, got.Wishlist)

		require.NoError(t, users.RemoveFromWishlist(ctx, user.ID, milk.ID))
		got, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{apple.ID}, got.Wishlist)
	})

	t.Run("products by ids keep request order", func(t *testing.T) {
		got, err := products.GetByIDs(ctx, []string{milk.ID, "64b7f0c2a1b2c3d4e5f60718", apple.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, milk.ID, got[0].ID)
		assert.Equal(t, apple.ID, got[1].ID)
	})

	t.Run("stock toggle", func(t *testing.T) {
		require.NoError(t, products.SetStock(ctx, apple.ID, false))
		got, err := products.GetByID(ctx, apple.ID)
		require.NoError(t, err)
		assert.False(t, got.InStock)
	})

	addr := &domain.Address{UserID: user.ID, FirstName: "Alice", Street: "1 Main St", City: "Springfield"}
	require.NoError(t, addresses.Create(ctx, addr))

	t.Run("addresses are owner scoped", func(t *testing.T) {
		other := "64b7f0c2a1b2c3d4e5f60718"
		_, err := addresses.GetByID(ctx, addr.ID, other)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, addresses.Delete(ctx, addr.ID, other), domain.ErrNotFound)

		addr.City = "Shelbyville"
		require.NoError(t, addresses.Update(ctx, addr))
		list, err := addresses.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Shelbyville", list[0].City)
	})

	t.Run("unpaid online orders are hidden", func(t *testing.T) {
		cod := &domain.Order{UserID: user.ID, AddressID: addr.ID, Amount: 5,
			Items:  []domain.OrderItem{{ProductID: apple.ID, Quantity: 2}},
			Status: domain.OrderStatusPlaced, PaymentType: domain.PaymentTypeCOD}
		online := &domain.Order{UserID: user.ID, AddressID: addr.ID, Amount: 1.53,
			Items:  []domain.OrderItem{{ProductID: milk.ID, Quantity: 1}},
			Status: domain.OrderStatusPlaced, PaymentType: domain.PaymentTypeOnline}
		require.NoError(t, orders.Create(ctx, cod))
		require.NoError(t, orders.Create(ctx, online))

		visible, err := orders.ListVisible(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, cod.ID, visible[0].ID)

		require.NoError(t, orders.MarkPaid(ctx, online.ID))
		visible, err = orders.ListVisible(ctx, "")
		require.NoError(t, err)
		require.Len(t, visible, 2)
		assert.Equal(t, online.ID, visible[0].ID)

		assert.ErrorIs(t, orders.Delete(ctx, online.ID), domain.ErrNotFound)
	})
}
