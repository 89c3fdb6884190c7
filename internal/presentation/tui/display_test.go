package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/markup"
	"github.com/aretw0/vitrine/pkg/pipeline"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(markdown string) (string, error) { return markdown, nil }

func newTestDisplay(buf *bytes.Buffer) *Display {
	return NewDisplay(buf, WithProfile(termenv.Ascii), WithRenderer(plain))
}

func TestDisplay_Contract(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDisplay(&buf)
	ports.RunDisplayContract(t, d, d.Last)
}

func TestDisplay_Frames(t *testing.T) {
	p := pipeline.New(markup.NewParser())
	ctx := context.Background()

	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{"rendered", `<StackPanel><Button Content="Hi"/></StackPanel>`, []string{"Rendered: StackPanel", "**StackPanel**", "**Button**"}},
		{"non visual", `<SolidColorBrush Color="Red"/>`, []string{"Parsed: SolidColorBrush (non-visual)", "Not a visual control, cannot display"}},
		{"failed", `<Button`, []string{"Error", "line"}},
		{"empty", "", []string{"(empty)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := newTestDisplay(&buf)
			require.NoError(t, d.Show(ctx, p.Run(ctx, tt.document, true)))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestDisplay_FailedFrameHasNoStaleOutline(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDisplay(&buf)
	p := pipeline.New(markup.NewParser())
	ctx := context.Background()

	require.NoError(t, d.Show(ctx, p.Run(ctx, `<Button/>`, true)))
	buf.Reset()
	require.NoError(t, d.Show(ctx, p.Run(ctx, `<Button`, true)))

	assert.NotContains(t, buf.String(), "**Button**")
	assert.Equal(t, domain.KindFailed, d.Last().Kind)
}

func TestDisplay_RendererErrorFallsBackToMarkdown(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf, WithProfile(termenv.Ascii), WithRenderer(func(string) (string, error) {
		return "", assert.AnError
	}))
	p := pipeline.New(markup.NewParser())
	ctx := context.Background()

	require.NoError(t, d.Show(ctx, p.Run(ctx, `<Button/>`, true)))
	assert.Contains(t, buf.String(), "**Button**")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(DefaultWidth)
	out, err := render("- **Button**")
	require.NoError(t, err)
	assert.Contains(t, out, "Button")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, DefaultWidth, TerminalWidth(&buf))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3\n")
	assert.True(t, strings.Contains(buf.String(), "v1.2.3"))
}
