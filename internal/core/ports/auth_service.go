package ports

import (
	"context"

	"github.com/importwise/landedcost/internal/core/domain"
)

// AuthService defines account registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, company, role, buyerID string) (*domain.Account, error)
	// Login verifies credentials and returns a signed JWT plus the account.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}
