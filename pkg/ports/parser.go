package ports

// Parser is the external markup-parsing collaborator.
// Parse fails with a descriptive error for malformed input.
type Parser interface {
	Parse(text string) (any, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(text string) (any, error)

// Parse calls f(text).
func (f ParserFunc) Parse(text string) (any, error) {
	return f(text)
}

// Visual is implemented by parsed values that can be placed on a display surface.
type Visual interface {
	// Outline describes the visual tree as markdown.
	Outline() string
}

// TypeNamer is implemented by parsed values that know their own type name.
// Values without it are named after their Go type.
type TypeNamer interface {
	TypeName() string
}
