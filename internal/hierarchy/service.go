// Package hierarchy reconstructs the visible portion of the account forest
// for a requesting account.
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/opshive/orgtree/internal/domain"
)

// ErrTreeForbidden is returned when a leaf user asks for the tree.
var ErrTreeForbidden = errors.New("only admins and sub-admins can view the tree")

// Branch is a sub-admin with its attached users.
type Branch struct {
	domain.Account
	Users []domain.Account `json:"users"`
}

// Tree is the subtree visible to a requester. Exactly one of the two fields
// is populated: Branches for an admin requester, Users for a sub-admin.
type Tree struct {
	Branches []Branch
	Users    []domain.Account
}

// Service implements hierarchy resolution.
type Service struct {
	repo Repository
}

// NewService creates a new hierarchy service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// VisibleTree resolves the subtree the requester may read. An admin sees its
// sub-admins each carrying their users; a sub-admin sees its own users as a
// flat list; a user sees nothing and gets ErrTreeForbidden. Missing children
// are an empty result, never an error.
func (s *Service) VisibleTree(ctx context.Context, requester *domain.Account) (*Tree, error) {
	switch requester.Role {
	case domain.RoleAdmin:
		subAdmins, err := s.repo.ListChildren(ctx, requester.ID, domain.RoleSubAdmin)
		if err != nil {
			return nil, fmt.Errorf("list sub-admins: %w", err)
		}

		branches := make([]Branch, 0, len(subAdmins))
		for _, sub := range subAdmins {
			users, err := s.repo.ListChildren(ctx, sub.ID, domain.RoleUser)
			if err != nil {
				return nil, fmt.Errorf("list users of sub-admin %s: %w", sub.ID, err)
			}
			branches = append(branches, Branch{Account: sub, Users: users})
		}
		return &Tree{Branches: branches}, nil

	case domain.RoleSubAdmin:
		users, err := s.repo.ListChildren(ctx, requester.ID, domain.RoleUser)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return &Tree{Users: users}, nil

	default:
		return nil, ErrTreeForbidden
	}
}
