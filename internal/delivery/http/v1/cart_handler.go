package v1

import (
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/internal/domain"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(cartUC *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// Update replaces the stored cart with the posted snapshot.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartItems domain.CartItems `json:"cartItems"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := h.cartUC.Update(r.Context(), middleware.UserID(r.Context()), req.CartItems); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteMessage(w, "Cart Updated")
}
