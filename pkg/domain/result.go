package domain

import "fmt"

// Kind identifies the active variant of a Result.
type Kind string

const (
	KindEmpty     Kind = "empty"
	KindRendered  Kind = "rendered"
	KindNonVisual Kind = "non_visual"
	KindFailed    Kind = "failed"
)

// Result is the preview produced by one pipeline run.
// The zero value is the Empty preview.
type Result struct {
	Kind     Kind   `json:"kind"`
	Node     any    `json:"node,omitempty"`
	TypeName string `json:"type_name,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Empty returns the "no content" preview.
func Empty() Result {
	return Result{Kind: KindEmpty}
}

// Rendered returns a preview carrying a visual node.
func Rendered(node any, typeName string) Result {
	return Result{Kind: KindRendered, Node: node, TypeName: typeName}
}

// NonVisual returns a preview for a value that parsed but cannot be displayed.
func NonVisual(typeName string) Result {
	return Result{Kind: KindNonVisual, TypeName: typeName}
}

// Failed returns an error preview.
func Failed(message string) Result {
	return Result{Kind: KindFailed, Message: message}
}

// IsEmpty reports whether r is the Empty variant. The zero Result counts as empty.
func (r Result) IsEmpty() bool {
	return r.Kind == KindEmpty || r.Kind == ""
}

// Status returns the one-line status text shown next to the preview.
func (r Result) Status() string {
	switch r.Kind {
	case KindRendered:
		return fmt.Sprintf("Rendered: %s", r.TypeName)
	case KindNonVisual:
		return fmt.Sprintf("Parsed: %s (non-visual)", r.TypeName)
	case KindFailed:
		return "Error"
	default:
		return ""
	}
}

// Fallback is the text shown in place of a NonVisual value.
func (r Result) Fallback() string {
	if r.Kind != KindNonVisual {
		return ""
	}
	return fmt.Sprintf("Parsed object of type: %s\n(Not a visual control, cannot display)", r.TypeName)
}

// Preferences are the user toggles read on every run.
type Preferences struct {
	AutoRun bool `json:"auto_run" mapstructure:"auto_run"`
	Wrap    bool `json:"wrap" mapstructure:"wrap"`
}

// DefaultPreferences matches the playground defaults: both toggles on.
func DefaultPreferences() Preferences {
	return Preferences{AutoRun: true, Wrap: true}
}
