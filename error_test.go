package pagemd_test

import (
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	t.Run("application errors carry code and message", func(t *testing.T) {
		t.Parallel()

		err := pagemd.Errorf(pagemd.EINVALID, "bad %s", "input")

		assert.Equal(t, pagemd.EINVALID, pagemd.ErrorCode(err))
		assert.Equal(t, "bad input", pagemd.ErrorMessage(err))
	})

	t.Run("unknown errors map to internal", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagemd.EINTERNAL, pagemd.ErrorCode(assert.AnError))
	})

	t.Run("nil error has empty code", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", pagemd.ErrorCode(nil))
	})
}
