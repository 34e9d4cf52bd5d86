package common

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatchException(t *testing.T) {
	sentinel := errors.New("boom")
	for _, tc := range []struct {
		description string
		panicWith   interface{}
		expectErr   string
		expectIs    error
	}{
		{
			description: "no panic",
		},
		{
			description: "error value",
			panicWith:   sentinel,
			expectErr:   "boom",
			expectIs:    sentinel,
		},
		{
			description: "string value",
			panicWith:   "bad thing",
			expectErr:   "bad thing",
		},
		{
			description: "other value",
			panicWith:   42,
			expectErr:   "42",
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			err := func() (err error) {
				defer CatchException(&err)
				if tc.panicWith != nil {
					panic(tc.panicWith)
				}
				return nil
			}()
			if tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.expectErr, err.Error())
			if tc.expectIs != nil {
				assert.True(t, errors.Is(err, tc.expectIs))
			}
		})
	}
}

func TestCatchExceptionHandler(t *testing.T) {
	var handled error
	func() {
		defer CatchExceptionHandler(func(err error) {
			handled = err
		})
		panic("listener failed")
	}()
	require.Error(t, handled)
	assert.Equal(t, "listener failed", handled.Error())

	called := false
	func() {
		defer CatchExceptionHandler(func(err error) {
			called = true
		})
	}()
	assert.False(t, called)
}
