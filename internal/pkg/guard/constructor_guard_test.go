package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		testError := errors.New("test error")

		guardCopy := g

		require.NoError(t, g.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}
