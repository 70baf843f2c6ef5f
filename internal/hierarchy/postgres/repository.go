// Package postgres provides the PostgreSQL implementation of the hierarchy
// repository.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opshive/orgtree/internal/domain"
)

// Repository implements the hierarchy.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListChildren retrieves the direct children of an account that hold the
// given role. The (parent_id, role) index keeps subtree reads cheap; creation
// order makes sibling order stable across identical calls.
func (r *Repository) ListChildren(ctx context.Context, parentID string, role domain.Role) ([]domain.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, parent_id, created_at
		FROM accounts
		WHERE parent_id = $1 AND role = $2
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, parentID, role)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.ParentID,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}
