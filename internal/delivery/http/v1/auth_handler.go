package v1

import (
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

// AuthHandler serves customer sessions and the profile page.
type AuthHandler struct {
	authUC        *usecase.AuthUsecase
	tokens        *utils.TokenManager
	secureCookies bool
	maxUpload     int64
}

func NewAuthHandler(authUC *usecase.AuthUsecase, tokens *utils.TokenManager, secureCookies bool, maxUploadSizeMB int64) *AuthHandler {
	return &AuthHandler{
		authUC:        authUC,
		tokens:        tokens,
		secureCookies: secureCookies,
		maxUpload:     maxUploadSizeMB << 20,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterInput
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authUC.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.SetSessionCookie(w, utils.UserCookie, token, h.tokens.Expiry(), h.secureCookies)
	utils.WriteSuccess(w, http.StatusCreated, utils.Payload{"user": user.Public()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.SetSessionCookie(w, utils.UserCookie, token, h.tokens.Expiry(), h.secureCookies)
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"user": user.Public()})
}

func (h *AuthHandler) IsAuth(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUC.IsAuth(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w, utils.UserCookie, h.secureCookies)
	utils.WriteMessage(w, "Logged Out")
}

// UpdateProfile accepts multipart fields name and phone plus an optional
// profileImage file.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}
	files, closeFiles, err := formFiles(r, "profileImage")
	defer closeFiles()
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	in := usecase.ProfileInput{
		Name:  r.FormValue("name"),
		Phone: r.FormValue("phone"),
	}
	if len(files) > 0 {
		in.Image = &files[0]
	}

	user, err := h.authUC.UpdateProfile(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"message": "Profile updated", "user": user})
}
