package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"github.com/yukikurage/freelance-tracker-api/internal/repository"
	"github.com/yukikurage/freelance-tracker-api/internal/utils"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// protectedProfileFields cannot be changed through a profile update.
var protectedProfileFields = []string{"email", "password", "token", "id"}

// AuthService handles registration, login and profile operations.
type AuthService struct {
	users  *repository.UserRepository
	ids    utils.IDGenerator
	tokens utils.TokenMinter
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, ids utils.IDGenerator, tokens utils.TokenMinter) *AuthService {
	return &AuthService{
		users:  users,
		ids:    ids,
		tokens: tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is the outcome of a successful registration or login.
type Session struct {
	Token string
	User  models.Record
}

// Register creates a user with the default settings and a fresh token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	token := s.tokens.MintToken()
	user := models.NewUser(s.ids.NextID(), input.Name, input.Email, input.Password, token)

	created, err := s.users.CreateIfEmailAbsent(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &Session{Token: token, User: created}, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login returns the existing token of the user matching both email and password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.users.FindByCredentials(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &Session{Token: user.String(models.UserFieldToken), User: user}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Record, error) {
	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile merges fields over the profile of the token holder. Email,
// password, token and id are never changed.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, fields models.Record) (models.Record, error) {
	patch := fields.Without(protectedProfileFields...)

	user, err := s.users.UpdateByToken(ctx, token, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
