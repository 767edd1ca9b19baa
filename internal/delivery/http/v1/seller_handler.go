package v1

import (
	"net/http"

	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

type SellerHandler struct {
	sellerUC      *usecase.SellerUsecase
	tokens        *utils.TokenManager
	secureCookies bool
}

func NewSellerHandler(sellerUC *usecase.SellerUsecase, tokens *utils.TokenManager, secureCookies bool) *SellerHandler {
	return &SellerHandler{sellerUC: sellerUC, tokens: tokens, secureCookies: secureCookies}
}

func (h *SellerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := h.sellerUC.Login(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.SetSessionCookie(w, utils.SellerCookie, token, h.tokens.Expiry(), h.secureCookies)
	utils.WriteMessage(w, "Logged In")
}

// IsAuth only runs behind RequireSeller, so reaching it means success.
func (h *SellerHandler) IsAuth(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, nil)
}

func (h *SellerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w, utils.SellerCookie, h.secureCookies)
	utils.WriteMessage(w, "Logged Out")
}
