package domain

import "github.com/google/uuid"

// Actor is the caller of a service operation as seen by the authorization
// policy. The zero value is the anonymous actor.
type Actor struct {
	Username string
	Roles    RoleSet
	// ContributorID is the caller's own contributor profile, when one exists.
	ContributorID *uuid.UUID
}

// Anonymous returns an actor with no identity.
func Anonymous() Actor {
	return Actor{}
}

// IsAuthenticated reports whether the actor carries an identity.
func (a Actor) IsAuthenticated() bool {
	return a.Username != ""
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Roles.Has(RoleAdmin)
}

// HasContributor reports whether an identity resolved to a contributor profile.
func (a Actor) HasContributor() bool {
	return a.ContributorID != nil && *a.ContributorID != uuid.Nil
}
