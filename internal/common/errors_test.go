package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("could not open the rule database", cause)

	assert.Equal(t, "could not open the rule database: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "could not open the rule database", userErr.UserMessage)
}

func TestUserError_NoCause(t *testing.T) {
	err := NewUserError("nothing to export", nil)
	assert.Equal(t, "nothing to export", err.Error())
}

func TestSetupLogger_InvalidConfig(t *testing.T) {
	assert.ErrorIs(t, SetupLogger("verbose", "console"), ErrInvalidConfig)
	assert.ErrorIs(t, SetupLogger("info", "xml"), ErrInvalidConfig)
	assert.NoError(t, SetupLogger("", ""))
}
