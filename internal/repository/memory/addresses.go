package memrepo

import (
	"context"
	"sort"

	"greencart/internal/domain"
)

type addressRepo struct{ s *Store }

func (r *addressRepo) Create(_ context.Context, addr *domain.Address) error {
	if err := validID(addr.UserID); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	addr.ID = newID()
	cp := *addr
	r.s.addresses[addr.ID] = &cp
	return nil
}

func (r *addressRepo) ListByUser(_ context.Context, userID string) ([]domain.Address, error) {
	if err := validID(userID); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Address{}
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	// ObjectID hex sorts by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *addressRepo) GetByID(_ context.Context, id, userID string) (*domain.Address, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, domain.Errorf(domain.ErrNotFound, "address not found")
	}
	cp := *a
	return &cp, nil
}

func (r *addressRepo) Update(_ context.Context, addr *domain.Address) error {
	if err := validID(addr.ID); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[addr.ID]
	if !ok || a.UserID != addr.UserID {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	cp := *addr
	r.s.addresses[addr.ID] = &cp
	return nil
}

func (r *addressRepo) Delete(_ context.Context, id, userID string) error {
	if err := validID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[id]
	if !ok || a.UserID != userID {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	delete(r.s.addresses, id)
	return nil
}
