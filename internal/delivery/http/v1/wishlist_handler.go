package v1

import (
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

type WishlistHandler struct {
	wishlistUC *usecase.WishlistUsecase
}

func NewWishlistHandler(wishlistUC *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{wishlistUC: wishlistUC}
}

type wishlistReq struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.wishlistUC.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"wishlist": products})
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.wishlistUC.Add(r.Context(), middleware.UserID(r.Context()), req.ProductID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteMessage(w, "Added to wishlist")
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	var req wishlistReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.wishlistUC.Remove(r.Context(), middleware.UserID(r.Context()), req.ProductID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteMessage(w, "Removed from wishlist")
}
