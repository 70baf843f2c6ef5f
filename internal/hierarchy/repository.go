package hierarchy

import (
	"context"

	"github.com/opshive/orgtree/internal/domain"
)

// Repository defines the read-side interface the resolver queries. Sibling
// order must be stable within a call but carries no further guarantee.
type Repository interface {
	ListChildren(ctx context.Context, parentID string, role domain.Role) ([]domain.Account, error)
}
