package markup

import (
	"fmt"
	"strings"
)

// Attribute is a name/value pair as written in the source.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Element is one node of the parsed tree.
type Element struct {
	Type      string      `json:"type"`
	Namespace string      `json:"namespace"`
	Property  bool        `json:"property,omitempty"`
	Line      int         `json:"line"`
	Attrs     []Attribute `json:"attributes,omitempty"`
	Text      string      `json:"text,omitempty"`
	Children  []*Element  `json:"children,omitempty"`
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Count returns the number of elements in the subtree rooted at e.
func (e *Element) Count() int {
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// Control is a parsed value whose root is a visual control.
type Control struct {
	*Element
}

// Object is a parsed value whose root is a known non-visual type.
type Object struct {
	*Element
}

// TypeName returns the root element type.
func (c *Control) TypeName() string { return c.Type }

// TypeName returns the root element type.
func (o *Object) TypeName() string { return o.Type }

// Outline renders the control tree as a nested markdown list.
func (c *Control) Outline() string {
	var sb strings.Builder
	writeOutline(&sb, c.Element, 0)
	return sb.String()
}

func writeOutline(sb *strings.Builder, e *Element, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if e.Property {
		fmt.Fprintf(sb, "- *%s*", e.Type)
	} else {
		fmt.Fprintf(sb, "- **%s**", e.Type)
	}
	for _, a := range e.Attrs {
		fmt.Fprintf(sb, " `%s=%q`", a.Name, a.Value)
	}
	if e.Text != "" {
		fmt.Fprintf(sb, " %q", e.Text)
	}
	sb.WriteString("\n")
	for _, child := range e.Children {
		writeOutline(sb, child, depth+1)
	}
}
