package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/learnhub/backend/internal/platform/apperror"
)

var errDuplicateLike = apperror.New(
	apperror.CodeConflict,
	apperror.BusinessCodeDuplicateLike,
	"resource already liked",
	http.StatusConflict,
)

func TestConstructors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        *apperror.AppError
		wantCode   apperror.ErrorCode
		wantBiz    apperror.BusinessCode
		wantStatus int
		wantInner  error
	}{
		{
			name:       "new",
			err:        apperror.New(apperror.CodeNotFound, apperror.BusinessCodeResourceNotFound, "resource not found", http.StatusNotFound),
			wantCode:   apperror.CodeNotFound,
			wantBiz:    apperror.BusinessCodeResourceNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal keeps the cause",
			err:        apperror.Internal("failed to delete resource", cause),
			wantCode:   apperror.CodeInternalError,
			wantBiz:    apperror.BusinessCodeGeneral,
			wantStatus: http.StatusInternalServerError,
			wantInner:  cause,
		},
		{
			name:       "forbidden",
			err:        apperror.Forbidden("only the owner may delete this resource"),
			wantCode:   apperror.CodeForbidden,
			wantBiz:    apperror.BusinessCodePermissionDenied,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "validation",
			err:        apperror.Validation(apperror.BusinessCodeLearningIDMismatch, "learning id mismatch"),
			wantCode:   apperror.CodeValidationFailed,
			wantBiz:    apperror.BusinessCodeLearningIDMismatch,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantBiz, tt.err.BusinessCode)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantInner, tt.err.Inner)
			assert.Nil(t, tt.err.Details)
		})
	}
}

func TestWrap_KeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New(`duplicate key value violates unique constraint "user_likes_user_username_resource_id_key"`)
	err := apperror.Wrap(cause, apperror.CodeConflict, apperror.BusinessCodeDuplicateLike, "resource already liked", http.StatusConflict)

	assert.Equal(t, "resource already liked", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, fmt.Sprintf("%s", err), "unique constraint")
	assert.Contains(t, fmt.Sprintf("%+v", err), "Caused by: duplicate key")
}

func TestIs_MatchesCodePair(t *testing.T) {
	wrapped := fmt.Errorf("LikesService.Like: %w", errDuplicateLike)

	assert.ErrorIs(t, wrapped, errDuplicateLike)
	assert.ErrorIs(t, apperror.New(apperror.CodeConflict, apperror.BusinessCodeDuplicateLike, "other text", http.StatusConflict), errDuplicateLike)
	assert.NotErrorIs(t, apperror.New(apperror.CodeConflict, apperror.BusinessCodeCounterUnderflow, "", http.StatusConflict), errDuplicateLike)
	assert.NotErrorIs(t, errors.New("resource already liked"), errDuplicateLike)
}

func TestAs(t *testing.T) {
	got, ok := apperror.As(fmt.Errorf("handler: %w", errDuplicateLike))
	require.True(t, ok)
	assert.Same(t, errDuplicateLike, got)

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)

	_, ok = apperror.As(nil)
	assert.False(t, ok)
}

func TestClone_IsolatesDetails(t *testing.T) {
	sentinel := apperror.Validation(apperror.BusinessCodeInvalidCategory, "unknown format category")

	withDetails := sentinel.Clone().WithDetails(map[string]string{"format_category": "HOLOGRAM"})

	assert.Nil(t, sentinel.Details)
	assert.Equal(t, map[string]string{"format_category": "HOLOGRAM"}, withDetails.Details)
	assert.ErrorIs(t, withDetails, sentinel)
}

func TestFormat(t *testing.T) {
	err := apperror.Validation(apperror.BusinessCodeInvalidPagination, "limit must be positive").
		WithDetails(map[string]int{"limit": -1})

	assert.Equal(t, "limit must be positive", fmt.Sprintf("%v", err))
	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "Code: VALIDATION_FAILED, BusinessCode: INVALID_PAGINATION")
	assert.Contains(t, verbose, "HTTPStatus: 400")
	assert.Contains(t, verbose, "Details: map[limit:-1]")
	assert.NotContains(t, verbose, "Caused by")
}
