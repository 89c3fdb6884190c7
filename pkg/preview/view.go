package preview

import (
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/ports"
)

// View is the wire form of a result shared by the HTTP, MCP and Redis
// surfaces. The node itself is kept for clients that want the tree; Outline
// is its readable rendering.
type View struct {
	Kind     domain.Kind `json:"kind"`
	Status   string      `json:"status"`
	TypeName string      `json:"type_name,omitempty"`
	Message  string      `json:"message,omitempty"`
	Outline  string      `json:"outline,omitempty"`
	Fallback string      `json:"fallback,omitempty"`
	Node     any         `json:"node,omitempty"`
}

// NewView projects r onto its wire form.
func NewView(r domain.Result) View {
	v := View{
		Kind:     r.Kind,
		Status:   r.Status(),
		TypeName: r.TypeName,
		Message:  r.Message,
		Fallback: r.Fallback(),
	}
	if v.Kind == "" {
		v.Kind = domain.KindEmpty
	}
	if r.Kind == domain.KindRendered {
		v.Node = r.Node
		if visual, ok := r.Node.(ports.Visual); ok {
			v.Outline = visual.Outline()
		}
	}
	return v
}

// Result rebuilds the domain result a view was projected from. A node that
// went through JSON comes back in its decoded form.
func (v View) Result() domain.Result {
	switch v.Kind {
	case domain.KindRendered:
		return domain.Rendered(v.Node, v.TypeName)
	case domain.KindNonVisual:
		return domain.NonVisual(v.TypeName)
	case domain.KindFailed:
		return domain.Failed(v.Message)
	default:
		return domain.Empty()
	}
}
