package domain

import (
	"errors"
	"slices"
	"strings"
)

// ErrInvalidRole is returned when a label is not a grantable role.
var ErrInvalidRole = errors.New("role must be one of USER or ADMIN")

// Role is a flat role label carried on an identity.
type Role string

const (
	// RoleAnyone marks routes that need no authentication. It is never stored
	// on an identity and can never be granted.
	RoleAnyone Role = "ANYONE"
	RoleUser   Role = "USER"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole normalises a label and accepts only grantable roles.
func ParseRole(label string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(label))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// RoleSet is a small, sorted, duplicate-free set of roles.
type RoleSet []Role

// NewRoleSet builds a set from roles, dropping duplicates and ANYONE.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, r := range roles {
		set = set.With(r)
	}
	return set
}

// ParseRoleSet reads the space-separated form used in token claims.
// Unknown labels are skipped.
func ParseRoleSet(s string) RoleSet {
	var set RoleSet
	for _, label := range strings.Fields(s) {
		if r, err := ParseRole(label); err == nil {
			set = set.With(r)
		}
	}
	return set
}

// Has reports whether r is in the set. Every set implicitly holds ANYONE.
func (s RoleSet) Has(r Role) bool {
	if r == RoleAnyone {
		return true
	}
	return slices.Contains(s, r)
}

// HasAny reports whether the set holds at least one of roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// With returns a copy of the set with r added.
func (s RoleSet) With(r Role) RoleSet {
	if r == RoleAnyone || r == "" || slices.Contains(s, r) {
		return s
	}
	out := append(slices.Clone(s), r)
	slices.Sort(out)
	return out
}

// Strings returns the labels, for storage in a TEXT[] column.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// String returns the space-separated claim form.
func (s RoleSet) String() string {
	return strings.Join(s.Strings(), " ")
}
