package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeValidation, "first_name is required")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches code through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", New(CodeValidation, "bad email"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("matches inner code of nested coded errors", func(t *testing.T) {
		inner := New(CodeValidation, "bad email")
		err := Wrap(inner, CodeInternal, "validate candidate")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps cause reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "persist user")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "internal_error: persist user: connection refused", err.Error())

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeInternal, de.Code)
	})
}
