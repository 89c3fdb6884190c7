package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Status(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"empty", Empty(), ""},
		{"zero", Result{}, ""},
		{"rendered", Rendered(struct{}{}, "Button"), "Rendered: Button"},
		{"non visual", NonVisual("SolidColorBrush"), "Parsed: SolidColorBrush (non-visual)"},
		{"failed", Failed("line 1: boom"), "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Status())
		})
	}
}

func TestResult_IsEmpty(t *testing.T) {
	assert.True(t, Empty().IsEmpty())
	assert.True(t, Result{}.IsEmpty())
	assert.False(t, Failed("x").IsEmpty())
}

func TestResult_Fallback(t *testing.T) {
	assert.Equal(t,
		"Parsed object of type: Style\n(Not a visual control, cannot display)",
		NonVisual("Style").Fallback())
	assert.Empty(t, Rendered(nil, "Button").Fallback())
}

func TestParseFailure_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParseFailure(cause)

	assert.Equal(t, "unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)

	var pf *ParseFailure
	assert.ErrorAs(t, error(err), &pf)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnRunStart: func(context.Context, *RunEvent) { calls = append(calls, "a") },
	}
	b := LifecycleHooks{
		OnRunStart:  func(context.Context, *RunEvent) { calls = append(calls, "b") },
		OnCancelled: func(context.Context, *DebounceEvent) { calls = append(calls, "b-cancel") },
	}

	merged := a.Merge(b)
	merged.OnRunStart(context.Background(), &RunEvent{})
	merged.OnCancelled(context.Background(), &DebounceEvent{})

	assert.Equal(t, []string{"a", "b", "b-cancel"}, calls)
	assert.Nil(t, merged.OnScheduled)
	assert.Nil(t, merged.OnRunComplete)
}
