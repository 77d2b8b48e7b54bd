package permission

import "github.com/philly/learnhub/backend/internal/authz/domain"

// grants maps each role to the permissions it holds. Ownership scoping of
// ":own" permissions is applied by the authorization service.
var grants = map[domain.Role][]string{
	domain.RoleUser: {
		ResourcesCreate,
		ResourcesReadCategorized,
		ResourcesUpdateOwn,
		ResourcesDeleteOwn,
		ContributorsUpdateOwn,
		ContributorsDeleteOwn,
		LikesCreate,
		LikesDelete,
	},
	domain.RoleAdmin: {
		ResourcesCreate,
		ResourcesReadCategorized,
		ResourcesUpdateOwn,
		ResourcesUpdateAny,
		ResourcesDeleteOwn,
		ResourcesDeleteAny,
		ResourcesAssignLearningID,
		ContributorsReadAny,
		ContributorsUpdateOwn,
		ContributorsUpdateAny,
		ContributorsDeleteOwn,
		ContributorsDeleteAny,
		LikesCreate,
		LikesDelete,
		IdentityRolesAssign,
	},
}

// Granted reports whether any role in roles holds the permission.
func Granted(roles domain.RoleSet, id string) bool {
	for _, role := range roles {
		for _, p := range grants[role] {
			if p == id {
				return true
			}
		}
	}
	return false
}
