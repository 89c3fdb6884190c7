package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/muesli/termenv"
)

// Display prints each preview as a terminal frame: a status line followed by
// the rendered outline, the non-visual fallback or the error text.
type Display struct {
	mu      sync.Mutex
	out     *termenv.Output
	profile *termenv.Profile
	render  func(string) (string, error)
	clear   bool
	last    domain.Result
}

// DisplayOption configures a Display.
type DisplayOption func(*Display)

// WithRenderer replaces the markdown renderer used for outlines.
func WithRenderer(render func(string) (string, error)) DisplayOption {
	return func(d *Display) {
		d.render = render
	}
}

// WithClearScreen clears the terminal before every frame.
func WithClearScreen(on bool) DisplayOption {
	return func(d *Display) {
		d.clear = on
	}
}

// WithProfile forces a color profile (termenv.Ascii disables styling).
func WithProfile(p termenv.Profile) DisplayOption {
	return func(d *Display) {
		d.profile = &p
	}
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer, opts ...DisplayOption) *Display {
	d := &Display{
		last: domain.Empty(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.profile != nil {
		d.out = termenv.NewOutput(w, termenv.WithProfile(*d.profile))
	} else {
		d.out = termenv.NewOutput(w)
	}
	if d.render == nil {
		d.render = NewRenderer(TerminalWidth(w))
	}
	return d
}

var _ ports.Display = (*Display)(nil)

// Show prints a frame for result.
func (d *Display) Show(_ context.Context, result domain.Result) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = result
	if d.clear {
		d.out.ClearScreen()
	}
	_, err := io.WriteString(d.out, d.frame(result))
	return err
}

// Last returns the most recently shown result.
func (d *Display) Last() domain.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *Display) frame(r domain.Result) string {
	var sb strings.Builder
	switch r.Kind {
	case domain.KindRendered:
		sb.WriteString(d.status(r.Status(), "#22c55e") + "\n")
		sb.WriteString(d.outline(r.Node))
	case domain.KindNonVisual:
		sb.WriteString(d.status(r.Status(), "#eab308") + "\n")
		sb.WriteString(r.Fallback() + "\n")
	case domain.KindFailed:
		sb.WriteString(d.status(r.Status(), "#ef4444") + "\n")
		sb.WriteString(d.out.String(r.Message).Foreground(d.out.Color("#ef4444")).String() + "\n")
	default:
		sb.WriteString(d.out.String("(empty)").Faint().String() + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (d *Display) status(text, color string) string {
	return d.out.String(text).Bold().Foreground(d.out.Color(color)).String()
}

func (d *Display) outline(node any) string {
	visual, ok := node.(ports.Visual)
	if !ok {
		return ""
	}
	md := visual.Outline()
	rendered, err := d.render(md)
	if err != nil {
		return md + "\n"
	}
	return fmt.Sprintf("%s\n", strings.TrimRight(rendered, "\n"))
}
