package ports

import (
	"context"

	"github.com/importwise/landedcost/internal/core/domain"
)

// AuthRepository defines persistence operations for accounts.
type AuthRepository interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}
