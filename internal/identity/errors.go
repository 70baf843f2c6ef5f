package identity

import "errors"

// Sentinel errors returned by the identity service.
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidRole        = errors.New("invalid role provided")

	// ErrInvalidHierarchy is the errors.Is target for every parent/role rule
	// violation. The concrete error is always a *HierarchyError carrying the
	// reason shown to the caller.
	ErrInvalidHierarchy = errors.New("invalid hierarchy")
)

// HierarchyError describes a rejected parent/role combination.
type HierarchyError struct {
	Reason string
}

func (e *HierarchyError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidHierarchy) match any hierarchy violation.
func (e *HierarchyError) Is(target error) bool {
	return target == ErrInvalidHierarchy
}

func hierarchyError(reason string) error {
	return &HierarchyError{Reason: reason}
}
