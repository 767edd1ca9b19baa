package middleware

import (
	"context"
	"net/http"

	"greencart/internal/domain"
	"greencart/pkg/logger"
	"greencart/pkg/utils"
)

// Authenticator resolves session cookies to callers.
type Authenticator struct {
	tokens *utils.TokenManager
}

func NewAuthenticator(tokens *utils.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// RequireUser admits requests carrying a valid customer token and puts the
// user id on the request context.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(w, r, utils.UserCookie, utils.RoleCustomer)
		if !ok {
			return
		}
		setRequestUser(r.Context(), claims.Subject)
		ctx := context.WithValue(r.Context(), domain.UserIDContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSeller admits requests carrying a valid seller token.
func (a *Authenticator) RequireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(w, r, utils.SellerCookie, utils.RoleSeller)
		if !ok {
			return
		}
		setRequestUser(r.Context(), "seller:"+claims.Subject)
		ctx := context.WithValue(r.Context(), domain.SellerContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request, cookie, role string) (*utils.Claims, bool) {
	token, err := utils.ExtractToken(r, cookie)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return nil, false
	}

	claims, err := a.tokens.Validate(token)
	if err != nil {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("Rejected session token")
		utils.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return nil, false
	}
	if claims.Role != role {
		utils.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated customer id set by RequireUser.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(domain.UserIDContextKey).(string)
	return id
}

// Seller returns the authenticated seller set by RequireSeller.
func Seller(ctx context.Context) string {
	s, _ := ctx.Value(domain.SellerContextKey).(string)
	return s
}
