package memrepo

import (
	"context"
	"slices"

	"greencart/internal/domain"
)

type userRepo struct{ s *Store }

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	cp.CartItems = make(domain.CartItems, len(u.CartItems))
	for k, v := range u.CartItems {
		cp.CartItems[k] = v
	}
	cp.Wishlist = slices.Clone(u.Wishlist)
	if cp.Wishlist == nil {
		cp.Wishlist = []string{}
	}
	return &cp
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email || u.Name == user.Name {
			return domain.Errorf(domain.ErrConflict, "User already exists")
		}
	}
	now := r.s.now()
	user.ID = newID()
	user.CartItems = domain.CartItems{}
	user.Wishlist = []string{}
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.Errorf(domain.ErrNotFound, "user not found")
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "user not found")
	}
	return cloneUser(u), nil
}

func (r *userRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) error {
	return r.update(id, func(u *domain.User) error {
		if update.Name != "" && update.Name != u.Name {
			for _, other := range r.s.users {
				if other.Name == update.Name {
					return domain.Errorf(domain.ErrConflict, "Name is already taken")
				}
			}
			u.Name = update.Name
		}
		if update.Phone != "" {
			u.Phone = update.Phone
		}
		if update.ProfileImage != "" {
			u.ProfileImage = update.ProfileImage
		}
		return nil
	})
}

func (r *userRepo) SetCartItems(_ context.Context, id string, items domain.CartItems) error {
	return r.update(id, func(u *domain.User) error {
		u.CartItems = make(domain.CartItems, len(items))
		for k, v := range items {
			u.CartItems[k] = v
		}
		return nil
	})
}

func (r *userRepo) AddToWishlist(_ context.Context, userID, productID string) error {
	if err := validID(productID); err != nil {
		return err
	}
	return r.update(userID, func(u *domain.User) error {
		if !slices.Contains(u.Wishlist, productID) {
			u.Wishlist = append(u.Wishlist, productID)
		}
		return nil
	})
}

func (r *userRepo) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	if err := validID(productID); err != nil {
		return err
	}
	return r.update(userID, func(u *domain.User) error {
		u.Wishlist = slices.DeleteFunc(u.Wishlist, func(id string) bool { return id == productID })
		return nil
	})
}

func (r *userRepo) update(id string, fn func(*domain.User) error) error {
	if err := validID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	if err := fn(u); err != nil {
		return err
	}
	u.UpdatedAt = r.s.now()
	return nil
}
