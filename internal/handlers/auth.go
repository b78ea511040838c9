package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/freelance-tracker-api/internal/errors"
	"github.com/yukikurage/freelance-tracker-api/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register creates a user account and returns its session token.
func (h *AuthHandler) Register(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     payload.String("name"),
		Email:    payload.String("email"),
		Password: payload.String("password"),
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: session.Token,
		User:  dto.ToUserDTO(session.User),
	})
}

// Login exchanges email and password for the stored session token.
func (h *AuthHandler) Login(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    payload.String("email"),
		Password: payload.String("password"),
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: session.Token,
		User:  dto.ToUserDTO(session.User),
	})
}

// GetProfile returns the caller's profile without the password. GET requests
// bypass the token gate, so the header is checked here.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), profileToken(header))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "User not found")
			return
		}
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfile(user))
}

// UpdateProfile merges the payload over the caller's profile. Email, password,
// token and id are ignored.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		apierrors.Unauthorized(c, "")
		return
	}

	payload, err := bindPayload(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), profileToken(header), payload)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfile(user))
}

// profileToken takes the second space-separated part of the header, whatever
// the scheme.
func profileToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		apierrors.BadRequest(c, "All fields are required")
	case errors.Is(err, services.ErrUserExists):
		apierrors.BadRequest(c, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		h.log.Error("Auth request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
