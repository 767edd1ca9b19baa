package usecase

import (
	"crypto/subtle"

	"greencart/internal/domain"
	"greencart/pkg/utils"
)

// SellerUsecase authenticates the single store operator configured by
// SELLER_EMAIL and SELLER_PASSWORD.
type SellerUsecase struct {
	email    string
	password string
	tokens   *utils.TokenManager
}

func NewSellerUsecase(email, password string, tokens *utils.TokenManager) *SellerUsecase {
	return &SellerUsecase{
		email:    utils.NormalizeEmail(email),
		password: password,
		tokens:   tokens,
	}
}

func (u *SellerUsecase) Enabled() bool {
	return u.email != "" && u.password != ""
}

// Login returns a seller session token.
func (u *SellerUsecase) Login(email, password string) (string, error) {
	if !u.Enabled() {
		return "", domain.Errorf(domain.ErrUnavailable, "Seller login is disabled")
	}
	emailOK := subtle.ConstantTimeCompare([]byte(utils.NormalizeEmail(email)), []byte(u.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) == 1
	if !emailOK || !passOK {
		return "", domain.Errorf(domain.ErrUnauthorized, "Invalid Credentials")
	}
	return u.tokens.Generate(u.email, utils.RoleSeller)
}
