package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"greencart/internal/domain"
	memcache "greencart/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (*ProductUsecase, *mockProductRepo, *mockImageStore) {
	repo := &mockProductRepo{}
	images := &mockImageStore{}
	uc := NewProductUsecase(repo, images, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	return uc, repo, images
}

func TestProductUsecase_ListIsCached(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newProductFixture()
	require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Apple", Category: "Fruits", InStock: true}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := uc.List(ctx)
			assert.NoError(t, err)
			assert.Len(t, list, 1)
		}()
	}
	wg.Wait()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Apple", list[0].Name)
	assert.LessOrEqual(t, repo.listCalls, 8)

	before := repo.listCalls
	_, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, repo.listCalls, "warm cache must not hit the store")
}

func TestProductUsecase_ListSurvivesCancelledLeader(t *testing.T) {
	uc, repo, _ := newProductFixture()
	require.NoError(t, repo.Create(context.Background(), &domain.Product{Name: "Milk", Category: "Dairy", InStock: true}))
	repo.listGate = make(chan struct{})
	repo.listEntered = make(chan struct{}, 1)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := uc.List(leaderCtx)
		leaderErr <- err
	}()
	select {
	case <-repo.listEntered:
	case <-time.After(time.Second):
		t.Fatal("list fill never reached the store")
	}

	type result struct {
		list []domain.Product
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		list, err := uc.List(context.Background())
		follower <- result{list, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	select {
	case err := <-leaderErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(repo.listGate)
	select {
	case res := <-follower:
		require.NoError(t, res.err)
		require.Len(t, res.list, 1)
		assert.Equal(t, "Milk", res.list[0].Name)
	case <-time.After(time.Second):
		t.Fatal("waiting caller never got the list")
	}
	assert.Equal(t, 1, repo.listCalls, "both callers share one fill")
}

func TestProductUsecase_AddInvalidatesList(t *testing.T) {
	ctx := context.Background()
	uc, repo, images := newProductFixture()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	product, err := uc.Add(ctx, domain.NewProduct{
		Name:        "Milk",
		Description: []string{"Fresh", " ", "1L"},
		Price:       3,
		OfferPrice:  2.5,
		Category:    "Dairy",
	}, []ImageUpload{pngUpload(t, "milk.png")})
	require.NoError(t, err)
	assert.True(t, product.InStock)
	assert.Equal(t, []string{"Fresh", "1L"}, product.Description)
	assert.Equal(t, images.uploaded, product.Images)

	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.SetStock(ctx, product.ID, false))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.False(t, list[0].InStock)
	assert.Equal(t, 3, repo.listCalls)
}

func TestProductUsecase_AddValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newProductFixture()
	valid := domain.NewProduct{Name: "Bread", Price: 2, OfferPrice: 1.5, Category: "Bakery"}

	_, err := uc.Add(ctx, valid, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "images are required")

	bad := valid
	bad.Category = "Hardware"
	_, err = uc.Add(ctx, bad, []ImageUpload{pngUpload(t, "a.png")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.OfferPrice = 5
	_, err = uc.Add(ctx, bad, []ImageUpload{pngUpload(t, "a.png")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Price = -1
	_, err = uc.Add(ctx, bad, []ImageUpload{pngUpload(t, "a.png")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUsecase_AddCleansUpOnUploadFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mockProductRepo{}
	images := &failingAfterFirst{}
	uc := NewProductUsecase(repo, images, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	_, err := uc.Add(ctx, domain.NewProduct{Name: "Rice", Price: 4, Category: "Grains"},
		[]ImageUpload{pngUpload(t, "a.png"), pngUpload(t, "b.png")})
	require.Error(t, err)
	assert.Equal(t, []string{"https://img.test/first"}, images.deleted)
	assert.Empty(t, repo.products)
}

type failingAfterFirst struct {
	calls   int
	deleted []string
}

func (f *failingAfterFirst) UploadBuffer(_ context.Context, _ []byte, _ string) (string, error) {
	f.calls++
	if f.calls > 1 {
		return "", errors.New("bucket unavailable")
	}
	return "https://img.test/first", nil
}

func (f *failingAfterFirst) DeleteFile(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}
