package usecase

import (
	"context"
	"fmt"
	"sync"

	"greencart/internal/domain"
)

// mockUserRepo is an in-memory domain.UserRepository.
type mockUserRepo struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	nextID  int
	SetErr  error
	cartSet int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email || u.Name == user.Name {
			return domain.Errorf(domain.ErrConflict, "User already exists")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user%d", m.nextID)
	user.CartItems = domain.CartItems{}
	user.Wishlist = []string{}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.Errorf(domain.ErrNotFound, "user not found")
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.Errorf(domain.ErrNotFound, "user not found")
	}
	cp := *u
	cp.Wishlist = append([]string(nil), u.Wishlist...)
	return &cp, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	if update.Name != "" {
		u.Name = update.Name
	}
	if update.Phone != "" {
		u.Phone = update.Phone
	}
	if update.ProfileImage != "" {
		u.ProfileImage = update.ProfileImage
	}
	return nil
}

func (m *mockUserRepo) SetCartItems(_ context.Context, id string, items domain.CartItems) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	u, ok := m.users[id]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	u.CartItems = items
	m.cartSet++
	return nil
}

func (m *mockUserRepo) AddToWishlist(_ context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	for _, id := range u.Wishlist {
		if id == productID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (m *mockUserRepo) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "user not found")
	}
	kept := u.Wishlist[:0]
	for _, id := range u.Wishlist {
		if id != productID {
			kept = append(kept, id)
		}
	}
	u.Wishlist = kept
	return nil
}

// mockProductRepo is an in-memory domain.ProductRepository.
type mockProductRepo struct {
	mu        sync.RWMutex
	products  []domain.Product
	listCalls int

	// listGate, when set, holds List until closed or ctx ends.
	listGate    chan struct{}
	listEntered chan struct{}
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = fmt.Sprintf("prod%d", len(m.products)+1)
	m.products = append(m.products, *p)
	return nil
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if m.listGate != nil {
		if m.listEntered != nil {
			select {
			case m.listEntered <- struct{}{}:
			default:
			}
		}
		select {
		case <-m.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	return append([]domain.Product(nil), m.products...), nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.Errorf(domain.ErrNotFound, "product not found")
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Product{}
	for _, id := range ids {
		for _, p := range m.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *mockProductRepo) SetStock(_ context.Context, id string, inStock bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].InStock = inStock
			return nil
		}
	}
	return domain.Errorf(domain.ErrNotFound, "product not found")
}

// mockAddressRepo is an in-memory domain.AddressRepository.
type mockAddressRepo struct {
	mu        sync.RWMutex
	addresses map[string]domain.Address
	nextID    int
}

func newMockAddressRepo() *mockAddressRepo {
	return &mockAddressRepo{addresses: make(map[string]domain.Address)}
}

func (m *mockAddressRepo) Create(_ context.Context, addr *domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	addr.ID = fmt.Sprintf("addr%d", m.nextID)
	m.addresses[addr.ID] = *addr
	return nil
}

func (m *mockAddressRepo) ListByUser(_ context.Context, userID string) ([]domain.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Address{}
	for _, a := range m.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAddressRepo) GetByID(_ context.Context, id, userID string) (*domain.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.addresses[id]
	if !ok || a.UserID != userID {
		return nil, domain.Errorf(domain.ErrNotFound, "address not found")
	}
	return &a, nil
}

func (m *mockAddressRepo) Update(_ context.Context, addr *domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addresses[addr.ID]
	if !ok || a.UserID != addr.UserID {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	m.addresses[addr.ID] = *addr
	return nil
}

func (m *mockAddressRepo) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addresses[id]
	if !ok || a.UserID != userID {
		return domain.Errorf(domain.ErrNotFound, "address not found")
	}
	delete(m.addresses, id)
	return nil
}

// mockOrderRepo is an in-memory domain.OrderRepository; orders are kept
// in insertion order.
type mockOrderRepo struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = fmt.Sprintf("order%d", len(m.orders)+1)
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, domain.Errorf(domain.ErrNotFound, "order not found")
}

func (m *mockOrderRepo) ListVisible(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if userID != "" && o.UserID != userID {
			continue
		}
		if o.PaymentType == domain.PaymentTypeCOD || o.IsPaid {
			o.Items = append([]domain.OrderItem(nil), o.Items...)
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) MarkPaid(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].IsPaid = true
			return nil
		}
	}
	return domain.Errorf(domain.ErrNotFound, "order not found")
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id && !m.orders[i].IsPaid {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return domain.Errorf(domain.ErrNotFound, "unpaid order not found")
}

// mockImageStore records uploads and deletions.
type mockImageStore struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	UploadErr error
}

func (m *mockImageStore) UploadBuffer(_ context.Context, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	url := fmt.Sprintf("https://img.test/%d-%d", len(m.uploaded)+1, len(data))
	m.uploaded = append(m.uploaded, url)
	return url, nil
}

func (m *mockImageStore) DeleteFile(_ context.Context, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, fileURL)
	return nil
}

// mockPayments is a domain.PaymentGateway returning canned results.
type mockPayments struct {
	Requests    []domain.CheckoutRequest
	URL         string
	CheckoutErr error
	Event       *domain.PaymentEvent
	EventErr    error
}

func (m *mockPayments) CreateCheckout(_ context.Context, req domain.CheckoutRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	return m.URL, m.CheckoutErr
}

func (m *mockPayments) ParseEvent(_ []byte, _ string) (*domain.PaymentEvent, error) {
	return m.Event, m.EventErr
}
