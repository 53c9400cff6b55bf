package repository

import authdomain "email-planner-backend/internal/auth/domain"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	// ReplaceCredentials swaps the stored credential blob for a new whole
	// value in one write. Partial field patches are not supported.
	ReplaceCredentials(userID string, creds *authdomain.GoogleCredentials) error

	// DisableGmailSync turns the sync-enabled flag off, committed on its own
	// so the flag survives a rolled-back sync invocation.
	DisableGmailSync(userID string) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}
