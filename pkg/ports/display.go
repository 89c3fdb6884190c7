package ports

import (
	"context"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Display is a surface that shows the active preview.
// Show receives the complete result every time, replacing whatever was shown before.
type Display interface {
	Show(ctx context.Context, result domain.Result) error
}

// DisplayFunc adapts a plain function to the Display interface.
type DisplayFunc func(ctx context.Context, result domain.Result) error

// Show calls f(ctx, result).
func (f DisplayFunc) Show(ctx context.Context, result domain.Result) error {
	return f(ctx, result)
}
