package inject

import (
	"strings"
	"unicode"
)

// Marker is the token that shows the author declared their own vocabulary.
const Marker = "xmlns="

// Default namespace declarations, one per line.
const (
	DefaultNamespace = `xmlns="https://github.com/avaloniaui"`
	XamlNamespace    = `xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml"`
	FluentNamespace  = `xmlns:ui="using:FluentAvalonia.UI.Controls"`
)

// Container is the element used to wrap fragments that are not a single root element.
const Container = "Border"

const indent = "    "

// Declarations returns the three default namespace lines, indented.
func Declarations() []string {
	return []string{
		indent + DefaultNamespace,
		indent + XamlNamespace,
		indent + FluentNamespace,
	}
}

// Inject returns text completed with the default namespace declarations.
//
// Blank text and text that already carries a namespace declaration are
// returned unchanged. A fragment starting with '<' gets the declarations
// spliced into its first tag; anything else is wrapped in a container.
func Inject(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	if strings.Contains(trimmed, Marker) {
		return text
	}

	if strings.HasPrefix(trimmed, "<") {
		if tag, ok := RootTag(trimmed); ok {
			var sb strings.Builder
			sb.WriteString("<")
			sb.WriteString(tag)
			sb.WriteString("\n")
			for _, line := range Declarations() {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
			sb.WriteString(trimmed[1+len(tag):])
			return sb.String()
		}
	}

	return wrap(text)
}

// NeedsWrap reports whether Inject would change text.
func NeedsWrap(text string) bool {
	return Inject(text) != text
}

func wrap(text string) string {
	decl := Declarations()
	var sb strings.Builder
	sb.WriteString("<" + Container + " " + DefaultNamespace + "\n")
	sb.WriteString(decl[1] + "\n")
	sb.WriteString(decl[2] + ">\n")
	sb.WriteString(text)
	sb.WriteString("\n</" + Container + ">")
	return sb.String()
}
