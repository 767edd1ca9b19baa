package v1

import (
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/pkg/utils"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth     *AuthHandler
	Wishlist *WishlistHandler
	Cart     *CartHandler
	Address  *AddressHandler
	Seller   *SellerHandler
	Product  *ProductHandler
	Order    *OrderHandler
}

// RegisterRoutes mounts the storefront API on mux.
func RegisterRoutes(mux *http.ServeMux, h Handlers, auth *middleware.Authenticator) {
	user := func(fn http.HandlerFunc) http.Handler { return auth.RequireUser(fn) }
	seller := func(fn http.HandlerFunc) http.Handler { return auth.RequireSeller(fn) }

	// User
	mux.HandleFunc("POST /api/user/register", h.Auth.Register)
	mux.HandleFunc("POST /api/user/login", h.Auth.Login)
	mux.Handle("GET /api/user/is-auth", user(h.Auth.IsAuth))
	mux.Handle("GET /api/user/logout", user(h.Auth.Logout))
	mux.Handle("POST /api/user/update-profile", user(h.Auth.UpdateProfile))
	mux.Handle("GET /api/user/wishlist", user(h.Wishlist.GetMyWishlist))
	mux.Handle("POST /api/user/wishlist/add", user(h.Wishlist.AddToWishlist))
	mux.Handle("POST /api/user/wishlist/remove", user(h.Wishlist.RemoveFromWishlist))

	// Cart
	mux.Handle("POST /api/cart/update", user(h.Cart.Update))

	// Address
	mux.Handle("POST /api/address/add", user(h.Address.Add))
	mux.Handle("GET /api/address/get", user(h.Address.List))
	mux.Handle("PUT /api/address/update/{id}", user(h.Address.Update))
	mux.Handle("DELETE /api/address/delete/{id}", user(h.Address.Delete))

	// Seller
	mux.HandleFunc("POST /api/seller/login", h.Seller.Login)
	mux.Handle("GET /api/seller/is-auth", seller(h.Seller.IsAuth))
	mux.Handle("GET /api/seller/logout", seller(h.Seller.Logout))

	// Product
	mux.HandleFunc("GET /api/product/list", h.Product.List)
	mux.HandleFunc("GET /api/product/{id}", h.Product.Get)
	mux.Handle("POST /api/product/add", seller(h.Product.Add))
	mux.Handle("POST /api/product/stock", seller(h.Product.ChangeStock))

	// Order
	mux.Handle("POST /api/order/cod", user(h.Order.PlaceCOD))
	mux.Handle("POST /api/order/stripe", user(h.Order.PlaceStripe))
	mux.Handle("GET /api/order/user", user(h.Order.UserOrders))
	mux.Handle("GET /api/order/seller", seller(h.Order.SellerOrders))

	// Payment provider
	mux.HandleFunc("POST /stripe", h.Order.StripeWebhook)

	// Liveness
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("API is working"))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
