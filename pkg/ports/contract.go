package ports

import (
	"context"
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDisplayContract verifies that a Display accepts every preview variant and
// that each one fully replaces the previous. observe returns what the surface
// currently shows (or what it last received).
func RunDisplayContract(t *testing.T, display Display, observe func() domain.Result) {
	t.Helper()
	ctx := context.Background()

	t.Run("Rendered", func(t *testing.T) {
		require.NoError(t, display.Show(ctx, domain.Rendered(nil, "Button")))
		got := observe()
		assert.Equal(t, domain.KindRendered, got.Kind)
		assert.Equal(t, "Button", got.TypeName)
	})

	t.Run("Failed replaces Rendered", func(t *testing.T) {
		require.NoError(t, display.Show(ctx, domain.Failed("XML syntax error on line 1: unexpected EOF")))
		got := observe()
		assert.Equal(t, domain.KindFailed, got.Kind)
		assert.NotEmpty(t, got.Message)
		assert.Nil(t, got.Node, "a failed preview must not carry stale content")
		assert.Empty(t, got.TypeName)
	})

	t.Run("NonVisual", func(t *testing.T) {
		require.NoError(t, display.Show(ctx, domain.NonVisual("SolidColorBrush")))
		got := observe()
		assert.Equal(t, domain.KindNonVisual, got.Kind)
		assert.Empty(t, got.Message)
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, display.Show(ctx, domain.Empty()))
		got := observe()
		assert.True(t, got.IsEmpty())
		assert.Empty(t, got.Message)
		assert.Empty(t, got.TypeName)
	})
}
