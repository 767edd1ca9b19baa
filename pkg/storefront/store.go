package storefront

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"greencart/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	DefaultSyncDelay   = 500 * time.Millisecond
	DefaultSyncTimeout = 10 * time.Second

	// ProductsPath is where a non-empty search query navigates to.
	ProductsPath = "/products"
	HomePath     = "/"
)

type Options struct {
	Notifier Notifier
	// Navigate is called with a path when the view should change.
	Navigate    func(path string)
	Logger      *zerolog.Logger
	SyncDelay   time.Duration
	SyncTimeout time.Duration
}

// Store holds the storefront session: user, seller flag, catalog, cart,
// wishlist and search query. Cart changes are written back to the backend
// once the cart has been quiet for the sync delay.
type Store struct {
	backend     Backend
	notifier    Notifier
	navigate    func(string)
	log         zerolog.Logger
	syncs       *Debouncer
	syncTimeout time.Duration

	mu       sync.Mutex
	user     *User
	isSeller bool
	products []Product
	cart     map[string]int
	wishlist []Product
	query    string
}

func NewStore(backend Backend, opts Options) *Store {
	s := &Store{
		backend:     backend,
		notifier:    opts.Notifier,
		navigate:    opts.Navigate,
		syncTimeout: opts.SyncTimeout,
		cart:        make(map[string]int),
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = logger.Component("storefront")
	}
	delay := opts.SyncDelay
	if delay <= 0 {
		delay = DefaultSyncDelay
	}
	if s.syncTimeout <= 0 {
		s.syncTimeout = DefaultSyncTimeout
	}
	s.syncs = NewDebouncer(delay)
	return s
}

// Close stops pending cart write-backs.
func (s *Store) Close() {
	s.syncs.Close()
}

// Load runs the session refresh: session check, seller check, then the
// product list. A failing step does not stop the next one.
func (s *Store) Load(ctx context.Context) {
	_, _ = s.RefreshUser(ctx)

	isSeller, err := s.backend.CheckSeller(ctx)
	s.mu.Lock()
	s.isSeller = err == nil && isSeller
	s.mu.Unlock()

	if err := s.RefreshProducts(ctx); err != nil {
		s.notifier.Error("Failed to fetch products.")
	}
}

// RefreshUser re-checks the session. On success the cart is replaced by the
// persisted snapshot, unless the same user still has a write-back pending:
// the local cart is newer then and is kept. On failure the session is cleared.
func (s *Store) RefreshUser(ctx context.Context) (*User, error) {
	user, err := s.backend.CheckSession(ctx)
	if err != nil {
		s.SetUser(ctx, nil)
		return nil, err
	}
	s.setSession(ctx, user, true)
	return s.User(), nil
}

func (s *Store) RefreshProducts(ctx context.Context) error {
	products, err := s.backend.Products(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = slices.Clone(products)
	s.mu.Unlock()
	return nil
}

// SetUser replaces the session user, as after a login. The local cart is
// kept and written back under the new session. A nil user ends the session.
func (s *Store) SetUser(ctx context.Context, user *User) {
	s.setSession(ctx, user, false)
}

func (s *Store) setSession(ctx context.Context, user *User, seedCart bool) {
	s.mu.Lock()
	prev := s.user
	if user == nil {
		if prev != nil {
			s.syncs.Cancel(cartKey(prev.ID))
		}
		s.user = nil
		s.wishlist = nil
		s.mu.Unlock()
		return
	}

	u := cloneUser(user)
	s.user = u
	if seedCart && prev != nil && prev.ID == u.ID && s.syncs.Pending(cartKey(u.ID)) {
		seedCart = false
	}
	if seedCart {
		s.cart = make(map[string]int, len(u.CartItems))
		for id, qty := range u.CartItems {
			if qty > 0 {
				s.cart[id] = qty
			}
		}
	}
	if prev != nil && prev.ID != u.ID {
		s.syncs.Cancel(cartKey(prev.ID))
	}
	s.scheduleSyncLocked()
	s.mu.Unlock()

	if prev == nil || prev.ID != u.ID {
		if err := s.RefreshWishlist(ctx); err != nil {
			s.log.Error().Err(err).Msg("Failed to fetch wishlist")
		}
	}
}

// Logout ends the server session, then clears the local one.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		s.notifier.Error(errorMessage(err, "Failed to log out"))
		return err
	}
	s.SetUser(ctx, nil)
	s.notifier.Success("Logged Out")
	if s.navigate != nil {
		s.navigate(HomePath)
	}
	return nil
}

func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return cloneUser(s.user)
}

func (s *Store) IsSeller() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSeller
}

func (s *Store) SetSeller(isSeller bool) {
	s.mu.Lock()
	s.isSeller = isSeller
	s.mu.Unlock()
}

func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

func (s *Store) CartItems() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.cart)
}

func (s *Store) Wishlist() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wishlist)
}

func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetSearchQuery stores the query and navigates to the product list when it
// is non-empty.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
	if q != "" && s.navigate != nil {
		s.navigate(ProductsPath)
	}
}

func (s *Store) AddToCart(productID string) {
	s.mu.Lock()
	s.cart[productID]++
	s.scheduleSyncLocked()
	s.mu.Unlock()
	s.notifier.Success("Added to Cart")
}

// RemoveFromCart takes one unit off productID, dropping the entry when it
// was the last one. Unknown ids are ignored.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	qty, ok := s.cart[productID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if qty > 1 {
		s.cart[productID] = qty - 1
	} else {
		delete(s.cart, productID)
	}
	s.scheduleSyncLocked()
	s.mu.Unlock()
	s.notifier.Success("Removed from Cart")
}

// UpdateCartItem sets the quantity for productID. A non-positive quantity
// removes the entry.
func (s *Store) UpdateCartItem(productID string, quantity int) {
	s.mu.Lock()
	if quantity > 0 {
		s.cart[productID] = quantity
	} else {
		delete(s.cart, productID)
	}
	s.scheduleSyncLocked()
	s.mu.Unlock()
	s.notifier.Success("Cart Updated")
}

// ClearCart empties the cart, as after an order is placed.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = make(map[string]int)
	s.scheduleSyncLocked()
	s.mu.Unlock()
}

func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, qty := range s.cart {
		total += qty
	}
	return total
}

// CartAmount is the offer-price total of the cart truncated to cents.
// Products missing from the catalog contribute nothing.
func (s *Store) CartAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	prices := make(map[string]float64, len(s.products))
	for _, p := range s.products {
		prices[p.ID] = p.OfferPrice
	}

	total := decimal.Zero
	for id, qty := range s.cart {
		price, ok := prices[id]
		if !ok || qty <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Truncate(2).InexactFloat64()
}

func (s *Store) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inWishlistLocked(productID)
}

func (s *Store) inWishlistLocked(productID string) bool {
	return slices.ContainsFunc(s.wishlist, func(p Product) bool { return p.ID == productID })
}

// HandleWishlist toggles productID. Local state only changes through the
// refetch that follows a confirmed update.
func (s *Store) HandleWishlist(ctx context.Context, productID string) error {
	var (
		msg string
		err error
	)
	if s.InWishlist(productID) {
		msg, err = s.backend.RemoveFromWishlist(ctx, productID)
	} else {
		msg, err = s.backend.AddToWishlist(ctx, productID)
	}
	if err != nil {
		s.notifier.Error(errorMessage(err, "Failed to update wishlist"))
		return err
	}
	s.notifier.Success(msg)
	if err := s.RefreshWishlist(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to fetch wishlist")
	}
	return nil
}

// RefreshWishlist refetches the wishlist. Without a session it is a no-op.
func (s *Store) RefreshWishlist(ctx context.Context) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	list, err := s.backend.Wishlist(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != user.ID {
		return nil
	}
	s.wishlist = slices.Clone(list)
	return nil
}

// SyncPending reports whether a cart write-back is waiting to fire.
func (s *Store) SyncPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	return s.syncs.Pending(cartKey(s.user.ID))
}

func (s *Store) scheduleSyncLocked() {
	if s.user == nil {
		return
	}
	userID := s.user.ID
	s.syncs.Schedule(cartKey(userID), func() { s.writeBack(userID) })
}

// writeBack sends the cart as it is when the timer fires. Failures are
// logged; the next cart change schedules another attempt.
func (s *Store) writeBack(userID string) {
	s.mu.Lock()
	if s.user == nil || s.user.ID != userID {
		s.mu.Unlock()
		return
	}
	items := maps.Clone(s.cart)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()
	if err := s.backend.SyncCart(ctx, items); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to sync cart")
		return
	}
	s.log.Debug().Str("user_id", userID).Int("items", len(items)).Msg("Cart synced")
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func cloneUser(u *User) *User {
	cp := *u
	cp.CartItems = maps.Clone(u.CartItems)
	return &cp
}

func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
