package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLike(t *testing.T) {
	resourceID := uuid.New()

	like, err := NewLike(" ada ", resourceID)
	require.NoError(t, err)
	assert.Equal(t, "ada", like.Username)
	assert.Equal(t, resourceID, like.ResourceID)
	assert.NotEqual(t, uuid.Nil, like.ID)

	_, err = NewLike("  ", resourceID)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = NewLike("ada", uuid.Nil)
	assert.ErrorIs(t, err, ErrResourceRequired)
}
