package memrepo

import (
	"context"
	"slices"

	"greencart/internal/domain"
)

type orderRepo struct{ s *Store }

func cloneOrder(o *domain.Order) domain.Order {
	cp := *o
	cp.Items = slices.Clone(o.Items)
	return cp
}

func (r *orderRepo) Create(_ context.Context, order *domain.Order) error {
	if err := validID(order.UserID); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	order.ID = newID()
	order.CreatedAt = now
	order.UpdatedAt = now
	cp := cloneOrder(order)
	cp.Address = nil
	r.s.orders = append(r.s.orders, &cp)
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			cp := cloneOrder(o)
			return &cp, nil
		}
	}
	return nil, domain.Errorf(domain.ErrNotFound, "order not found")
}

// ListVisible returns COD or paid orders, newest first.
func (r *orderRepo) ListVisible(_ context.Context, userID string) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Order{}
	for i := len(r.s.orders) - 1; i >= 0; i-- {
		o := r.s.orders[i]
		if userID != "" && o.UserID != userID {
			continue
		}
		if o.PaymentType == domain.PaymentTypeCOD || o.IsPaid {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *orderRepo) MarkPaid(_ context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			o.IsPaid = true
			o.UpdatedAt = r.s.now()
			return nil
		}
	}
	return domain.Errorf(domain.ErrNotFound, "order not found")
}

func (r *orderRepo) Delete(_ context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, o := range r.s.orders {
		if o.ID == id && !o.IsPaid {
			r.s.orders = slices.Delete(r.s.orders, i, i+1)
			return nil
		}
	}
	return domain.Errorf(domain.ErrNotFound, "unpaid order not found")
}
