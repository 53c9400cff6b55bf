package domain

import (
	"context"
	"errors"

	authdomain "email-planner-backend/internal/auth/domain"
)

// ErrCredentialInvalid marks provider rejections of the stored token material
// (expired or revoked grant). The sync pipeline reacts by disabling sync for
// the user and asking for re-authentication.
var ErrCredentialInvalid = errors.New("provider credentials invalid or expired")

// CredentialUpdateFunc is called when the provider client refreshes the access
// token mid-request. Implementations must replace the stored blob as a whole.
type CredentialUpdateFunc func(creds *authdomain.GoogleCredentials) error

// MailProvider is the boundary to the remote mailbox service.
type MailProvider interface {
	// ListMessageIDs returns up to max message identifiers matching the query,
	// in provider order (newest first).
	ListMessageIDs(ctx context.Context, creds *authdomain.GoogleCredentials, query string, max int64, onUpdate CredentialUpdateFunc) ([]string, error)

	// GetMessage fetches and decodes one full message payload.
	GetMessage(ctx context.Context, creds *authdomain.GoogleCredentials, id string, onUpdate CredentialUpdateFunc) (*ProviderMessage, error)
}
