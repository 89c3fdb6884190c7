package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/presentation/tui"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/preview"
)

// ErrRenderFailed is returned by RunRender when the document did not parse.
// The error preview has already been printed.
var ErrRenderFailed = errors.New("document failed to parse")

// RunRender evaluates a document once, as a manual run, and prints the preview.
func RunRender(ctx context.Context, opts RunOptions, stdin io.Reader) (domain.Result, error) {
	cfg := opts.Config
	logger := createLogger(cfg.Debug)
	out := opts.out()

	doc, err := readDocument(opts.Path, stdin)
	if err != nil {
		return domain.Result{}, err
	}

	engine, err := createEngine(opts, logger, vitrine.WithTemplate(""))
	if err != nil {
		return domain.Result{}, err
	}
	result := engine.Pipeline.Run(ctx, doc, cfg.Wrap)

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preview.NewView(result)); err != nil {
			return result, err
		}
	} else if err := tui.NewDisplay(out).Show(ctx, result); err != nil {
		return result, err
	}

	if result.Kind == domain.KindFailed {
		return result, ErrRenderFailed
	}
	return result, nil
}
