package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/internal/ui/pretty"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	require.NotNil(t, pretty.NewStyles(true))
	require.NotNil(t, pretty.NewStyles(false))
}

func TestIsColorEnabled(t *testing.T) {
	// Not parallel: manipulates NO_COLOR.

	t.Run("always", func(t *testing.T) {
		assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
	})

	t.Run("never", func(t *testing.T) {
		assert.False(t, pretty.IsColorEnabled("never", &bytes.Buffer{}))
	})

	t.Run("auto with non-tty writer", func(t *testing.T) {
		assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	})

	t.Run("auto respects NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	})
}
