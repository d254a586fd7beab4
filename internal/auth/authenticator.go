package auth

import (
	"context"

	"github.com/foremenchoice/chitledger/internal/models"
)

// Authenticator defines the operator authentication operations.
// Implementations verify credentials against stored accounts; session
// tokens are handled separately by the JWTManager.
type Authenticator interface {
	// Register creates a new operator account with the given credentials.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the matching
	// account, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
