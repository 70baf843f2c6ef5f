// Package identity provides account registration, login and token handling
// for the three-level account hierarchy.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opshive/orgtree/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator issues and verifies bearer tokens.
type Authenticator interface {
	Issue(ctx context.Context, account *domain.Account) (string, error)
	// Verify returns the account id the token was issued for, or
	// ErrInvalidToken for a forged, malformed or expired token.
	Verify(ctx context.Context, token string) (string, error)
}

// Service implements identity business logic.
type Service struct {
	repo Repository
	auth Authenticator
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator) *Service {
	return &Service{repo: repo, auth: auth}
}

// SignupInput holds data for creating an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	ParentID *string
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// ParentCandidate is the reduced account view offered during signup.
type ParentCandidate struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Signup validates the parent/role rules, creates the account and issues a
// token for it. Checks run in a fixed order and the first failure is
// terminal:
//
//  1. duplicate email
//  2. admin with a parent
//  3. sub-admin or user without a parent
//  4. parent id that resolves to no account
//  5. sub-admin whose parent is not an admin
//  6. user whose parent is not a sub-admin
//
// The duplicate-email pre-check only buys a better error message; the
// repository's unique constraint is the authority under concurrency.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*domain.Account, string, error) {
	if !input.Role.IsValid() {
		return nil, "", ErrInvalidRole
	}

	existing, err := s.repo.GetAccountByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	requiredParent, needsParent := input.Role.RequiredParentRole()
	if !needsParent && input.ParentID != nil {
		return nil, "", hierarchyError("admin cannot have a parent")
	}
	if needsParent {
		if input.ParentID == nil {
			return nil, "", hierarchyError(fmt.Sprintf("%s must select a parent", input.Role))
		}
		parent, err := s.repo.GetAccountByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return nil, "", hierarchyError("selected parent does not exist")
			}
			return nil, "", fmt.Errorf("load parent: %w", err)
		}
		if parent.Role != requiredParent {
			switch input.Role {
			case domain.RoleSubAdmin:
				return nil, "", hierarchyError("sub-admin's parent must be an admin")
			default:
				return nil, "", hierarchyError("user's parent must be a sub-admin")
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		ParentID:     input.ParentID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.auth.Issue(ctx, account)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return account, token, nil
}

// Login verifies the credentials and issues a token. A missing account and a
// wrong password return the same ErrInvalidCredentials so callers cannot
// probe which emails are registered.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.Account, string, error) {
	account, err := s.repo.GetAccountByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.Issue(ctx, account)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return account, token, nil
}

// ListParentCandidates returns the accounts eligible to parent a new account
// of the given role: admins for sub-admins, sub-admins for users. Fan-out is
// unbounded, so no candidate is ever filtered out for having too many
// children.
func (s *Service) ListParentCandidates(ctx context.Context, forRole domain.Role) ([]ParentCandidate, error) {
	parentRole, ok := forRole.RequiredParentRole()
	if !ok {
		return nil, ErrInvalidRole
	}

	accounts, err := s.repo.ListAccountsByRole(ctx, parentRole)
	if err != nil {
		return nil, fmt.Errorf("list %s accounts: %w", parentRole, err)
	}

	candidates := make([]ParentCandidate, 0, len(accounts))
	for _, a := range accounts {
		candidates = append(candidates, ParentCandidate{
			ID:    a.ID,
			Name:  a.Name,
			Email: a.Email,
			Role:  a.Role,
		})
	}
	return candidates, nil
}

// GetAccountByID loads a single account.
func (s *Service) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.GetAccountByID(ctx, id)
}

// ValidateToken verifies a bearer token and resolves it to the account it was
// issued for. A token that validates but references a deleted account is
// treated the same as an invalid token.
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.Account, error) {
	accountID, err := s.auth.Verify(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	return account, nil
}
