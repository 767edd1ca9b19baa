package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greencart/internal/domain"
	"greencart/pkg/logger"
	"greencart/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthUsecase struct {
	userRepo domain.UserRepository
	images   domain.ImageStore
	tokens   *utils.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, images domain.ImageStore, tokens *utils.TokenManager) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		images:   images,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput holds an edit from the profile page. Blank fields keep the
// stored value.
type ProfileInput struct {
	Name  string
	Phone string
	Image *ImageUpload
}

// Register creates a customer account and returns it with a session token.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := utils.NormalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" {
		return nil, "", domain.Errorf(domain.ErrInvalidInput, "Missing Details")
	}
	if !utils.IsEmail(email) {
		return nil, "", domain.Errorf(domain.ErrInvalidInput, "Please enter a valid email")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", domain.Errorf(domain.ErrInvalidInput, "Password must be at least %d characters", minPasswordLength)
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.Errorf(domain.ErrConflict, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	logger.WithContext(ctx).Info().Str("user_id", user.ID).Msg("User registered")

	token, err := u.tokens.Generate(user.ID, utils.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials. Unknown email and wrong password share one error.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.Errorf(domain.ErrInvalidInput, "Email and password are required")
	}

	invalid := domain.Errorf(domain.ErrUnauthorized, "Invalid email or password")

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", invalid
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalid
	}

	token, err := u.tokens.Generate(user.ID, utils.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IsAuth loads the signed-in user, including the stored cart snapshot.
func (u *AuthUsecase) IsAuth(ctx context.Context, userID string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	update := domain.ProfileUpdate{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
	}

	var previousImage string
	if in.Image != nil {
		current, err := u.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		previousImage = current.ProfileImage

		url, err := storeImage(ctx, u.images, *in.Image, utils.AvatarMaxWidth)
		if err != nil {
			return nil, err
		}
		update.ProfileImage = url
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}

	if previousImage != "" && update.ProfileImage != "" {
		if err := u.images.DeleteFile(ctx, previousImage); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Str("url", previousImage).Msg("Failed to delete old profile image")
		}
	}

	return u.userRepo.GetByID(ctx, userID)
}
