package usecase

import (
	"context"

	authdomain "email-planner-backend/internal/auth/domain"
	authdto "email-planner-backend/internal/auth/dto"
)

// AuthUsecase defines authentication operations
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	// GoogleLoginURL returns the provider authorization URL that starts the
	// authorization-code flow.
	GoogleLoginURL() string

	// HandleGoogleCallback exchanges the authorization code, replaces the
	// user's credential blob as a whole and enables Gmail sync.
	HandleGoogleCallback(ctx context.Context, code string) (*authdto.TokenResponse, error)
}
