package memrepo

import (
	"context"
	"slices"

	"greencart/internal/domain"
)

type productRepo struct{ s *Store }

func cloneProduct(p *domain.Product) domain.Product {
	cp := *p
	cp.Description = slices.Clone(p.Description)
	cp.Images = slices.Clone(p.Images)
	return cp
}

func (r *productRepo) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	product.ID = newID()
	product.CreatedAt = now
	product.UpdatedAt = now
	cp := cloneProduct(product)
	r.s.products = append(r.s.products, &cp)
	return nil
}

// List returns products newest first.
func (r *productRepo) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.s.products))
	for i := len(r.s.products) - 1; i >= 0; i-- {
		out = append(out, cloneProduct(r.s.products[i]))
	}
	return out, nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p := r.find(id); p != nil {
		cp := cloneProduct(p)
		return &cp, nil
	}
	return nil, domain.Errorf(domain.ErrNotFound, "product not found")
}

func (r *productRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	for _, id := range ids {
		if err := validID(id); err != nil {
			return nil, err
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p := r.find(id); p != nil {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *productRepo) SetStock(_ context.Context, id string, inStock bool) error {
	if err := validID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.find(id)
	if p == nil {
		return domain.Errorf(domain.ErrNotFound, "product not found")
	}
	p.InStock = inStock
	p.UpdatedAt = r.s.now()
	return nil
}

func (r *productRepo) find(id string) *domain.Product {
	for _, p := range r.s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}
