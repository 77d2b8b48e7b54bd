package domain

import "github.com/google/uuid"

// MayMutate is the ownership rule for entity-specific mutations.
// Admins bypass ownership. Anyone else must have a contributor profile whose
// id equals the target's owner.
func MayMutate(actor Actor, owner uuid.UUID) bool {
	if actor.IsAdmin() {
		return true
	}
	if !actor.IsAuthenticated() || !actor.HasContributor() {
		return false
	}
	return *actor.ContributorID == owner
}
