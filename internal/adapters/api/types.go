// Package api defines the HTTP contract of the catalog: request and
// response bodies, typed parameters and the chi route table.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for HealthStatusStatus.
const (
	Degraded  HealthStatusStatus = "degraded"
	Healthy   HealthStatusStatus = "healthy"
	Unhealthy HealthStatusStatus = "unhealthy"
)

// Defines values for HealthStatusChecksDatabase.
const (
	Down HealthStatusChecksDatabase = "down"
	Up   HealthStatusChecksDatabase = "up"
)

// Error defines model for Error.
type Error struct {
	Error        string  `json:"error"`
	Message      string  `json:"message"`
	BusinessCode *string `json:"business_code,omitempty"`
	Context      any     `json:"context,omitempty"`
}

// HealthStatus defines model for HealthStatus.
type HealthStatus struct {
	Status    HealthStatusStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	Version   *string            `json:"version,omitempty"`
	Checks    *struct {
		Database *HealthStatusChecksDatabase `json:"database,omitempty"`
		Schema   *HealthStatusChecksDatabase `json:"schema,omitempty"`
	} `json:"checks,omitempty"`
}

// HealthStatusStatus defines model for HealthStatus.Status.
type HealthStatusStatus string

// HealthStatusChecksDatabase defines model for HealthStatus.Checks.Database.
type HealthStatusChecksDatabase string

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Username      string  `json:"username" validate:"required,min=3,max=30,username"`
	Password      string  `json:"password" validate:"required,min=8,max=72"`
	GithubProfile *string `json:"github_profile,omitempty" validate:"omitempty,max=100"`
	ScreenName    *string `json:"screen_name,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines model for TokenResponse.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	Roles       []string  `json:"roles"`
}

// Identity defines model for Identity.
type Identity struct {
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// GrantRoleRequest defines model for GrantRoleRequest.
type GrantRoleRequest struct {
	Role string `json:"role" validate:"notblank"`
}

// CreateResourceRequest defines model for CreateResourceRequest.
type CreateResourceRequest struct {
	LearningId     *int64 `json:"learning_id,omitempty" validate:"omitempty,gt=0"`
	Link           string `json:"link" validate:"notblank,max=2048"`
	Title          string `json:"title" validate:"notblank,max=255"`
	FormatCategory string `json:"format_category" validate:"notblank"`
	SubCategory    string `json:"sub_category" validate:"notblank"`
	Description    string `json:"description" validate:"notblank"`
}

// UpdateResourceRequest defines model for UpdateResourceRequest.
// Absent fields keep their stored value.
type UpdateResourceRequest struct {
	LearningId     *int64  `json:"learning_id,omitempty"`
	Link           *string `json:"link,omitempty" validate:"omitempty,max=2048"`
	Title          *string `json:"title,omitempty" validate:"omitempty,max=255"`
	FormatCategory *string `json:"format_category,omitempty"`
	SubCategory    *string `json:"sub_category,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// Resource defines model for Resource.
type Resource struct {
	Id              openapi_types.UUID `json:"id"`
	LearningId      int64              `json:"learning_id"`
	Link            string             `json:"link"`
	Title           string             `json:"title"`
	FormatCategory  string             `json:"format_category"`
	SubCategory     string             `json:"sub_category"`
	Description     string             `json:"description"`
	ContributorId   openapi_types.UUID `json:"contributor_id"`
	ContributorName string             `json:"contributor_name"`
	CreatedAt       time.Time          `json:"created_at"`
	ModifiedAt      time.Time          `json:"modified_at"`
	Likes           int64              `json:"likes"`
	LikedByMe       *bool              `json:"liked_by_me,omitempty"`
}

// ResourcePage defines model for ResourcePage.
type ResourcePage struct {
	Content       []Resource `json:"content"`
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
	TotalElements int64      `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
	HasNext       bool       `json:"has_next"`
	HasPrevious   bool       `json:"has_previous"`
}

// LikeSummary defines model for LikeSummary.
type LikeSummary struct {
	ResourceId openapi_types.UUID `json:"resource_id"`
	Likes      int64              `json:"likes"`
	LikedByMe  *bool              `json:"liked_by_me,omitempty"`
}

// UnlikeResponse defines model for UnlikeResponse.
type UnlikeResponse struct {
	Removed bool `json:"removed"`
}

// Contributor defines model for Contributor.
type Contributor struct {
	Id            openapi_types.UUID `json:"id"`
	DisplayName   string             `json:"display_name"`
	GithubProfile *string            `json:"github_profile,omitempty"`
	ScreenName    *string            `json:"screen_name,omitempty"`
	Contributions int                `json:"contributions"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// OwnedResource defines model for OwnedResource.
type OwnedResource struct {
	Id             openapi_types.UUID `json:"id"`
	LearningId     int64              `json:"learning_id"`
	Title          string             `json:"title"`
	Link           string             `json:"link"`
	FormatCategory string             `json:"format_category"`
	SubCategory    string             `json:"sub_category"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ContributorProfile defines model for ContributorProfile.
type ContributorProfile struct {
	Contributor
	Resources []OwnedResource `json:"resources"`
}

// ContributorDirectory defines model for ContributorDirectory.
type ContributorDirectory struct {
	Github     []Contributor `json:"github"`
	ScreenName []Contributor `json:"screen_name"`
}

// UpdateContributorRequest defines model for UpdateContributorRequest.
type UpdateContributorRequest struct {
	GithubProfile *string `json:"github_profile,omitempty" validate:"omitempty,max=100"`
	ScreenName    *string `json:"screen_name,omitempty" validate:"omitempty,max=100"`
}

// ListResourcesParams defines parameters for ListResources.
type ListResourcesParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListContributorsParams defines parameters for ListContributors.
type ListContributorsParams struct {
	Name *string             `form:"name,omitempty" json:"name,omitempty"`
	Id   *openapi_types.UUID `form:"id,omitempty" json:"id,omitempty"`
}
