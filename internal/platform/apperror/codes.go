package apperror

// ErrorCode is the general, system-level category of an error.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInternalError    ErrorCode = "INTERNAL_SERVER_ERROR"
)

// BusinessCode is the specific business reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral          BusinessCode = "GENERAL"
	BusinessCodeInvalidFormat    BusinessCode = "INVALID_FORMAT"
	BusinessCodePermissionDenied BusinessCode = "PERMISSION_DENIED"

	// Identity
	BusinessCodeUserNotFound       BusinessCode = "USER_NOT_FOUND"
	BusinessCodeUsernameTaken      BusinessCode = "USERNAME_TAKEN"
	BusinessCodeInvalidCredentials BusinessCode = "INVALID_CREDENTIALS"
	BusinessCodeInvalidRole        BusinessCode = "INVALID_ROLE"
	BusinessCodeRoleNotFound       BusinessCode = "ROLE_NOT_FOUND"

	// Contributors
	BusinessCodeContributorNotFound     BusinessCode = "CONTRIBUTOR_NOT_FOUND"
	BusinessCodeDisplayNameRequired     BusinessCode = "DISPLAY_NAME_REQUIRED"
	BusinessCodeDisplayNameTaken        BusinessCode = "DISPLAY_NAME_TAKEN"
	BusinessCodeContributorHasResources BusinessCode = "CONTRIBUTOR_HAS_RESOURCES"
	BusinessCodeNoContributorProfile    BusinessCode = "NO_CONTRIBUTOR_PROFILE"
	BusinessCodeCounterUnderflow        BusinessCode = "CONTRIBUTION_COUNTER_UNDERFLOW"

	// Resources
	BusinessCodeResourceNotFound    BusinessCode = "RESOURCE_NOT_FOUND"
	BusinessCodeLearningIDMismatch  BusinessCode = "LEARNING_ID_MISMATCH"
	BusinessCodeDuplicateLearningID BusinessCode = "DUPLICATE_LEARNING_ID"
	BusinessCodeInvalidCategory     BusinessCode = "INVALID_CATEGORY"
	BusinessCodeInvalidPagination   BusinessCode = "INVALID_PAGINATION"
	BusinessCodeBlankKeyword        BusinessCode = "BLANK_KEYWORD"

	// Likes
	BusinessCodeDuplicateLike BusinessCode = "DUPLICATE_LIKE"
)
