package permission

import "strings"

// Permission represents a structured permission with metadata
type Permission struct {
	ID          string // The permission identifier (e.g., "resources:update:own")
	Resource    string // The entity type being accessed (e.g., "resources")
	Action      string // The action being performed (e.g., "update")
	Scope       string // Optional scope qualifier ("own" or "any")
	Description string
}

// Entity types. Resources and contributors have ownership checkers.
const (
	EntityResources    = "resources"
	EntityContributors = "contributors"
	EntityLikes        = "likes"
	EntityIdentity     = "identity"
)

// Permission ID constants
const (
	// Resources
	ResourcesCreate           = "resources:create"
	ResourcesReadCategorized  = "resources:read_categorized"
	ResourcesUpdateOwn        = "resources:update:own"
	ResourcesUpdateAny        = "resources:update:any"
	ResourcesDeleteOwn        = "resources:delete:own"
	ResourcesDeleteAny        = "resources:delete:any"
	ResourcesAssignLearningID = "resources:assign_learning_id"

	// Contributors
	ContributorsReadAny   = "contributors:read_by_id"
	ContributorsUpdateOwn = "contributors:update:own"
	ContributorsUpdateAny = "contributors:update:any"
	ContributorsDeleteOwn = "contributors:delete:own"
	ContributorsDeleteAny = "contributors:delete:any"

	// Likes
	LikesCreate = "likes:create"
	LikesDelete = "likes:delete"

	// Identity administration
	IdentityRolesAssign = "identity:roles_assign"
)

// registry holds all structured Permission objects
var registry = map[string]*Permission{
	ResourcesCreate:           {ID: ResourcesCreate, Resource: EntityResources, Action: "create", Description: "Submit new learning resources"},
	ResourcesReadCategorized:  {ID: ResourcesReadCategorized, Resource: EntityResources, Action: "read_categorized", Description: "List resources by format or subject category"},
	ResourcesUpdateOwn:        {ID: ResourcesUpdateOwn, Resource: EntityResources, Action: "update", Scope: "own", Description: "Update own resources"},
	ResourcesUpdateAny:        {ID: ResourcesUpdateAny, Resource: EntityResources, Action: "update", Scope: "any", Description: "Update any resource"},
	ResourcesDeleteOwn:        {ID: ResourcesDeleteOwn, Resource: EntityResources, Action: "delete", Scope: "own", Description: "Delete own resources"},
	ResourcesDeleteAny:        {ID: ResourcesDeleteAny, Resource: EntityResources, Action: "delete", Scope: "any", Description: "Delete any resource"},
	ResourcesAssignLearningID: {ID: ResourcesAssignLearningID, Resource: EntityResources, Action: "assign_learning_id", Description: "Choose the learning id of a new resource"},

	ContributorsReadAny:   {ID: ContributorsReadAny, Resource: EntityContributors, Action: "read_by_id", Description: "Look up contributors by surrogate id"},
	ContributorsUpdateOwn: {ID: ContributorsUpdateOwn, Resource: EntityContributors, Action: "update", Scope: "own", Description: "Edit own contributor profile"},
	ContributorsUpdateAny: {ID: ContributorsUpdateAny, Resource: EntityContributors, Action: "update", Scope: "any", Description: "Edit any contributor profile"},
	ContributorsDeleteOwn: {ID: ContributorsDeleteOwn, Resource: EntityContributors, Action: "delete", Scope: "own", Description: "Delete own contributor profile"},
	ContributorsDeleteAny: {ID: ContributorsDeleteAny, Resource: EntityContributors, Action: "delete", Scope: "any", Description: "Delete any contributor profile"},

	LikesCreate: {ID: LikesCreate, Resource: EntityLikes, Action: "create", Description: "Like a resource"},
	LikesDelete: {ID: LikesDelete, Resource: EntityLikes, Action: "delete", Description: "Remove own like"},

	IdentityRolesAssign: {ID: IdentityRolesAssign, Resource: EntityIdentity, Action: "roles_assign", Description: "Grant roles to identities"},
}

// FromID looks up a permission by its ID and returns the structured Permission object
func FromID(id string) (*Permission, bool) {
	perm, exists := registry[id]
	return perm, exists
}

// AnyVariant maps an ":own" permission to its ":any" counterpart.
func AnyVariant(id string) string {
	return strings.TrimSuffix(id, ":own") + ":any"
}
