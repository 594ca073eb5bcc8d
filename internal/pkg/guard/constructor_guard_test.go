package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard accepts any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Vehicle must be created via NewVehicle")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	type stop struct {
		address string
		guard   guard.ConstructorGuard
	}
	errStopNotConstructed := errors.New("stop must be created via newStop")

	newStop := func(address string) (stop, error) {
		if address == "" {
			return stop{}, errors.New("address is required")
		}
		return stop{address: address, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor output validates", func(t *testing.T) {
		s, err := newStop("HUB")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errStopNotConstructed))
	})

	t.Run("struct literal fails validation", func(t *testing.T) {
		s := stop{address: "HUB"}

		assert.Equal(t, errStopNotConstructed, s.guard.Validate(errStopNotConstructed))
	})

	t.Run("constructor rejects empty address", func(t *testing.T) {
		_, err := newStop("")

		require.Error(t, err)
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})

	for range 16 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 500 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}

	for range 16 {
		<-done
	}
}
