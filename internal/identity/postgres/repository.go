// Package postgres provides the PostgreSQL implementation of the identity
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opshive/orgtree/internal/domain"
	"github.com/opshive/orgtree/internal/identity"
)

const uniqueViolation = "23505"

// Repository implements the identity.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateAccount inserts a new account. The unique index on email is the
// authority for duplicate detection: a concurrent insert that passed the
// service's pre-check still fails here with identity.ErrEmailExists.
func (r *Repository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.ParentID,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.ErrEmailExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its id.
func (r *Repository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getAccount(ctx, "id", id)
}

// GetAccountByEmail retrieves an account by its email. The comparison is
// case-sensitive, matching how emails are stored.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getAccount(ctx, "email", email)
}

func (r *Repository) getAccount(ctx context.Context, column, value string) (*domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, role, parent_id, created_at
		FROM accounts
		WHERE %s = $1
	`, column)

	var account domain.Account
	err := r.db.QueryRow(ctx, query, value).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.ParentID,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account by %s: %w", column, err)
	}
	return &account, nil
}

// ListAccountsByRole retrieves all accounts holding the given role, in stable
// creation order.
func (r *Repository) ListAccountsByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, parent_id, created_at
		FROM accounts
		WHERE role = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
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
