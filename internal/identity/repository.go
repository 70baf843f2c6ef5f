package identity

import (
	"context"

	"github.com/opshive/orgtree/internal/domain"
)

// Repository defines the interface for account persistence.
//
// CreateAccount must enforce email uniqueness at the storage level and return
// ErrEmailExists on a duplicate, even when a concurrent insert slipped past
// the service's pre-check.
type Repository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccountByID(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListAccountsByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
}
