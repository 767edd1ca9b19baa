package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"greencart/internal/domain"
	"greencart/pkg/cache"
	"greencart/pkg/logger"
	"greencart/pkg/utils"

	"golang.org/x/sync/singleflight"
)

// MaxProductImages bounds the photos on one listing.
const MaxProductImages = 4

type ProductUsecase struct {
	repo     domain.ProductRepository
	images   domain.ImageStore
	cache    cache.CacheService
	cacheTTL time.Duration
	sfg      singleflight.Group // collapses concurrent list misses
}

func NewProductUsecase(repo domain.ProductRepository, images domain.ImageStore, cache cache.CacheService, cacheTTL time.Duration) *ProductUsecase {
	return &ProductUsecase{
		repo:     repo,
		images:   images,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// listFillTimeout bounds a shared list fill once it is detached from the
// caller that started it.
const listFillTimeout = 15 * time.Second

// List returns every product, newest first, served from cache when warm.
// Concurrent misses share one fill. A caller whose ctx ends stops waiting
// without failing the others.
func (u *ProductUsecase) List(ctx context.Context) ([]domain.Product, error) {
	ch := u.sfg.DoChan(domain.ProductListCacheKey, func() (interface{}, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listFillTimeout)
		defer cancel()
		return u.fillList(fillCtx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.Product), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (u *ProductUsecase) fillList(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	found, err := u.cache.Get(ctx, domain.ProductListCacheKey, &cached)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Product cache read failed")
	}
	if found {
		return cached, nil
	}

	products, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.cache.Set(ctx, domain.ProductListCacheKey, products, u.cacheTTL); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Product cache write failed")
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (*domain.Product, error) {
	return u.repo.GetByID(ctx, id)
}

// Add validates the listing, uploads its images and stores it in stock.
func (u *ProductUsecase) Add(ctx context.Context, in domain.NewProduct, images []ImageUpload) (*domain.Product, error) {
	if err := validateProduct(&in); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "At least one product image is required")
	}
	if len(images) > MaxProductImages {
		return nil, domain.Errorf(domain.ErrInvalidInput, "At most %d images are allowed", MaxProductImages)
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := storeImage(ctx, u.images, img, utils.ProductImageMaxWidth)
		if err != nil {
			u.discardImages(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		OfferPrice:  in.OfferPrice,
		Images:      urls,
		Category:    in.Category,
		InStock:     true,
	}
	if err := u.repo.Create(ctx, product); err != nil {
		u.discardImages(ctx, urls)
		return nil, err
	}

	u.invalidateList(ctx)
	return product, nil
}

func (u *ProductUsecase) SetStock(ctx context.Context, id string, inStock bool) error {
	if id == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Product id is required")
	}
	if err := u.repo.SetStock(ctx, id, inStock); err != nil {
		return err
	}
	u.invalidateList(ctx)
	return nil
}

func (u *ProductUsecase) invalidateList(ctx context.Context) {
	if err := u.cache.Delete(ctx, domain.ProductListCacheKey); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Product cache invalidation failed")
	}
}

func (u *ProductUsecase) discardImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := u.images.DeleteFile(ctx, url); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Str("url", url).Msg("Failed to delete orphaned image")
		}
	}
}

func validateProduct(p *domain.NewProduct) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Errorf(domain.ErrInvalidInput, "Product name is required")
	}
	if !slices.Contains(domain.ProductCategories, p.Category) {
		return domain.Errorf(domain.ErrInvalidInput, "Unknown category %q", p.Category)
	}
	if p.Price < 0 || p.OfferPrice < 0 {
		return domain.Errorf(domain.ErrInvalidInput, "Prices must not be negative")
	}
	if p.OfferPrice == 0 {
		p.OfferPrice = p.Price
	}
	if p.OfferPrice > p.Price {
		return domain.Errorf(domain.ErrInvalidInput, "Offer price must not exceed price")
	}

	desc := make([]string, 0, len(p.Description))
	for _, line := range p.Description {
		if line = strings.TrimSpace(line); line != "" {
			desc = append(desc, line)
		}
	}
	p.Description = desc
	return nil
}
