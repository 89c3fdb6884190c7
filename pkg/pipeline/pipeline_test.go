package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/markup"
	"github.com/aretw0/vitrine/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{}

func (widget) Outline() string { return "- widget" }

type gadget struct{ n int }

func TestRun_BlankIsEmpty(t *testing.T) {
	calls := 0
	p := New(ports.ParserFunc(func(string) (any, error) {
		calls++
		return widget{}, nil
	}))

	for _, doc := range []string{"", " ", "\n\t  \r\n"} {
		for _, wrap := range []bool{true, false} {
			assert.Equal(t, domain.Empty(), p.Run(context.Background(), doc, wrap))
		}
	}
	assert.Zero(t, calls, "blank documents never reach the parser")
}

func TestRun_WrapPreference(t *testing.T) {
	var seen []string
	p := New(ports.ParserFunc(func(text string) (any, error) {
		seen = append(seen, text)
		return widget{}, nil
	}))

	p.Run(context.Background(), `<Button Content="Hi"/>`, true)
	p.Run(context.Background(), `<Button Content="Hi"/>`, false)

	require.Len(t, seen, 2)
	assert.True(t, strings.HasPrefix(seen[0], "<Button\n    xmlns="))
	assert.Equal(t, `<Button Content="Hi"/>`, seen[1])
}

func TestRun_Classification(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		err      error
		kind     domain.Kind
		typeName string
		message  string
	}{
		{"visual", widget{}, nil, domain.KindRendered, "widget", ""},
		{"visual pointer", &widget{}, nil, domain.KindRendered, "widget", ""},
		{"non-visual", &gadget{n: 1}, nil, domain.KindNonVisual, "gadget", ""},
		{"builtin", 42, nil, domain.KindNonVisual, "int", ""},
		{"error", nil, errors.New("line 1: boom"), domain.KindFailed, "", "line 1: boom"},
		{"nil value", nil, nil, domain.KindFailed, "", domain.ErrNoValue.Error()},
		{"typed nil", (*gadget)(nil), nil, domain.KindFailed, "", domain.ErrNoValue.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(ports.ParserFunc(func(string) (any, error) { return tt.value, tt.err }))
			got := p.Run(context.Background(), "<x/>", false)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.typeName, got.TypeName)
			assert.Equal(t, tt.message, got.Message)
			if tt.kind != domain.KindRendered {
				assert.Nil(t, got.Node)
			}
		})
	}
}

func TestRun_RecoversParserPanic(t *testing.T) {
	p := New(ports.ParserFunc(func(string) (any, error) { panic("index out of range") }))
	got := p.Run(context.Background(), "<x/>", false)
	assert.Equal(t, domain.KindFailed, got.Kind)
	assert.Contains(t, got.Message, "index out of range")
}

func TestRun_Hooks(t *testing.T) {
	var events []*domain.RunEvent
	record := func(_ context.Context, e *domain.RunEvent) { events = append(events, e) }

	p := New(markup.NewParser(), WithLifecycleHooks(domain.LifecycleHooks{
		OnRunStart:    record,
		OnRunComplete: record,
	}))
	got := p.RunWith(context.Background(), `<Button Content="Hi"/>`, true, domain.TriggerDebounce)
	require.Equal(t, domain.KindRendered, got.Kind)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventRunStart, events[0].Type)
	assert.Equal(t, domain.EventRunComplete, events[1].Type)
	assert.Equal(t, events[0].RunID, events[1].RunID)
	assert.NotEmpty(t, events[0].RunID)
	assert.Equal(t, domain.TriggerDebounce, events[1].Trigger)
	assert.True(t, events[1].Wrapped)
	assert.Equal(t, domain.KindRendered, events[1].Kind)
	assert.Equal(t, "Button", events[1].TypeName)
	assert.GreaterOrEqual(t, events[1].Duration.Nanoseconds(), int64(0))
}

func TestRun_WithMarkupParser(t *testing.T) {
	p := New(markup.NewParser())
	ctx := context.Background()

	got := p.Run(ctx, `<Button Content="Hi"/>`, true)
	assert.Equal(t, domain.KindRendered, got.Kind)
	assert.Equal(t, "Button", got.TypeName)
	assert.Equal(t, "Rendered: Button", got.Status())

	got = p.Run(ctx, `<Button Content="Hi"/>`, false)
	assert.Equal(t, domain.KindFailed, got.Kind)
	assert.Contains(t, got.Message, "no namespace declared")

	got = p.Run(ctx, "hello", true)
	assert.Equal(t, domain.KindRendered, got.Kind)
	assert.Equal(t, "Border", got.TypeName)

	got = p.Run(ctx, "<Button", true)
	assert.Equal(t, domain.KindFailed, got.Kind)
	assert.NotEmpty(t, got.Message)

	got = p.Run(ctx, `<SolidColorBrush Color="Red"/>`, true)
	assert.Equal(t, domain.KindNonVisual, got.Kind)
	assert.Equal(t, "Parsed: SolidColorBrush (non-visual)", got.Status())
}
