// Package domain contains the entities shared across feature packages.
package domain

import "time"

// Role is the closed set of positions an account can hold in the hierarchy.
type Role string

// Account roles, ordered from root to leaf.
const (
	RoleAdmin    Role = "admin"
	RoleSubAdmin Role = "sub-admin"
	RoleUser     Role = "user"
)

// IsValid checks if the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleUser:
		return true
	}
	return false
}

// RequiredParentRole returns the role a parent account must hold for a child
// of role r. ok is false for admins, which are hierarchy roots and have no
// parent.
func (r Role) RequiredParentRole() (parent Role, ok bool) {
	switch r {
	case RoleSubAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleSubAdmin, true
	}
	return "", false
}

// CanViewTree reports whether the role is allowed to read any part of the
// hierarchy. Leaf users own no subtree.
func (r Role) CanViewTree() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// Account represents a stored account. The parent/child relation forms a
// forest of exact depth three: admins have no parent, sub-admins hang off
// admins, users hang off sub-admins. Accounts are created once and never
// mutated.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ParentID     *string   `json:"parent_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
