package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/learnhub/backend/internal/platform/apperror"
)

type registerPayload struct {
	Username   string  `json:"username" validate:"required,min=3,max=30,username"`
	Password   string  `json:"password" validate:"required,min=8"`
	ScreenName *string `json:"screen_name,omitempty" validate:"omitempty,notblank"`
}

type resourcePayload struct {
	Link  string `json:"link" validate:"notblank,http_url"`
	Title string `json:"title" validate:"notblank,max=255"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(registerPayload{Username: "ada_l", Password: "correct-horse"}))
	assert.NoError(t, v.Validate(resourcePayload{Link: "https://go.dev/doc", Title: "Effective Go"}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	blank := "   "

	err := v.Validate(registerPayload{Username: "a!", Password: "short", ScreenName: &blank})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 3 characters", details["username"])
	assert.Equal(t, "must be at least 8 characters", details["password"])
	assert.Equal(t, "must not be blank", details["screen_name"])
}

func TestValidate_NotBlankAndURL(t *testing.T) {
	v := New()

	err := v.Validate(resourcePayload{Link: "not a url", Title: "  \t"})
	require.Error(t, err)

	appErr, _ := apperror.As(err)
	details := appErr.Details.(map[string]string)
	assert.Equal(t, "must be a valid URL", details["link"])
	assert.Equal(t, "must not be blank", details["title"])
}

func TestValidate_UsernameCharset(t *testing.T) {
	v := New()
	err := v.Validate(registerPayload{Username: "bad name", Password: "long-enough"})
	require.Error(t, err)

	appErr, _ := apperror.As(err)
	details := appErr.Details.(map[string]string)
	assert.Contains(t, details["username"], "letters, digits")
}
