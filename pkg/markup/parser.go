package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRoot is returned for input without any element.
var ErrNoRoot = errors.New("no root element")

// Error is a semantic parse error with its source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser reads markup fragments into *Control or *Object values.
// A Parser is stateless and safe for concurrent use.
type Parser struct {
	vocab Vocabulary
}

// Option configures a Parser.
type Option func(*Parser)

// WithVocabulary replaces the default vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(p *Parser) {
		p.vocab = v
	}
}

// NewParser creates a parser with the default vocabulary.
func NewParser(opts ...Option) *Parser {
	p := &Parser{vocab: DefaultVocabulary()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Vocabulary returns the vocabulary the parser resolves types against.
func (p *Parser) Vocabulary() Vocabulary {
	return p.vocab
}

// Parse reads exactly one root element from text.
func (p *Parser) Parse(text string) (any, error) {
	d := xml.NewDecoder(strings.NewReader(text))
	d.Strict = true

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := d.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &Error{Line: line, Msg: fmt.Sprintf("unexpected element <%s> after the root element", t.Name.Local)}
			}
			el, err := p.resolve(t, line, stack)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			s := strings.TrimSpace(string(t))
			if s == "" {
				continue
			}
			if len(stack) == 0 {
				return nil, &Error{Line: line, Msg: fmt.Sprintf("text %q outside the root element", truncate(s, 24))}
			}
			top := stack[len(stack)-1]
			if top.Text != "" {
				top.Text += " "
			}
			top.Text += s
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	if root.Property {
		return nil, &Error{Line: root.Line, Msg: fmt.Sprintf("property element <%s> cannot be the root", root.Type)}
	}

	visual, _ := p.vocab.Lookup(root.Namespace, root.Type)
	if visual {
		return &Control{Element: root}, nil
	}
	return &Object{Element: root}, nil
}

func (p *Parser) resolve(t xml.StartElement, line int, stack []*Element) (*Element, error) {
	name := t.Name
	if name.Space == "" {
		return nil, &Error{Line: line, Msg: fmt.Sprintf("no namespace declared for element <%s>", name.Local)}
	}
	if !p.vocab.HasNamespace(name.Space) {
		return nil, &Error{Line: line, Msg: fmt.Sprintf("unknown namespace %q for element <%s>", name.Space, name.Local)}
	}

	el := &Element{Type: name.Local, Namespace: name.Space, Line: line}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		el.Attrs = append(el.Attrs, Attribute{Name: attrName(a.Name), Value: a.Value})
	}

	// Owner.Property syntax, e.g. <Border.Background>.
	if owner, prop, ok := strings.Cut(name.Local, "."); ok {
		if len(stack) == 0 || stack[len(stack)-1].Type != owner {
			parent := "nothing"
			if len(stack) > 0 {
				parent = "<" + stack[len(stack)-1].Type + ">"
			}
			return nil, &Error{Line: line, Msg: fmt.Sprintf("property element <%s> is not valid inside %s", name.Local, parent)}
		}
		if prop == "" {
			return nil, &Error{Line: line, Msg: fmt.Sprintf("property element <%s> has no property name", name.Local)}
		}
		el.Property = true
		return el, nil
	}

	if _, known := p.vocab.Lookup(name.Space, name.Local); !known {
		return nil, &Error{Line: line, Msg: fmt.Sprintf("unable to resolve type %q from namespace %q", name.Local, name.Space)}
	}
	return el, nil
}

// attrName keeps well-known prefixes readable ("x:Name" instead of the namespace URI).
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case XamlNamespace:
		return "x:" + n.Local
	case FluentNamespace:
		return "ui:" + n.Local
	default:
		return n.Space + ":" + n.Local
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
