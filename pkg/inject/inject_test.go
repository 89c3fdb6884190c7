package inject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const nsLines = "    xmlns=\"https://github.com/avaloniaui\"\n" +
	"    xmlns:x=\"http://schemas.microsoft.com/winfx/2006/xaml\"\n" +
	"    xmlns:ui=\"using:FluentAvalonia.UI.Controls\"\n"

func TestInject_SelfClosingElement(t *testing.T) {
	got := Inject(`<Button Content="Hi"/>`)
	assert.Equal(t, "<Button\n"+nsLines+` Content="Hi"/>`, got)
}

func TestInject_MinimalTagFallsBackToCloseBracket(t *testing.T) {
	got := Inject("<StackPanel></StackPanel>")
	assert.Equal(t, "<StackPanel\n"+nsLines+"></StackPanel>", got)
}

func TestInject_SlashBeforeSpace(t *testing.T) {
	got := Inject("<Separator/>")
	assert.Equal(t, "<Separator\n"+nsLines+"/>", got)
}

func TestInject_NewlineAfterTagName(t *testing.T) {
	got := Inject("<StackPanel\n  Spacing=\"4\">\n</StackPanel>")
	assert.True(t, strings.HasPrefix(got, "<StackPanel\n"+nsLines))
	assert.True(t, strings.HasSuffix(got, "\n  Spacing=\"4\">\n</StackPanel>"))
}

func TestInject_LeadingWhitespaceIsDropped(t *testing.T) {
	got := Inject("\n   <TextBlock Text=\"x\" />")
	assert.Equal(t, "<TextBlock\n"+nsLines+` Text="x" />`, got)
}

func TestInject_NonElementIsWrapped(t *testing.T) {
	got := Inject("hello")
	want := "<Border xmlns=\"https://github.com/avaloniaui\"\n" +
		"    xmlns:x=\"http://schemas.microsoft.com/winfx/2006/xaml\"\n" +
		"    xmlns:ui=\"using:FluentAvalonia.UI.Controls\">\n" +
		"hello\n</Border>"
	assert.Equal(t, want, got)
}

func TestInject_UnterminatedTagIsWrapped(t *testing.T) {
	got := Inject("<Button")
	assert.True(t, strings.HasPrefix(got, "<Border "))
	assert.Contains(t, got, "\n<Button\n</Border>")
}

func TestInject_Unchanged(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "  \n\t "},
		{"declared", `<Button xmlns="https://github.com/avaloniaui" Content="Hi"/>`},
		{"declared with leading space", "  <Grid xmlns=\"urn:x\"/>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, Inject(tt.in))
			assert.False(t, NeedsWrap(tt.in))
		})
	}
}

func TestInject_Idempotent(t *testing.T) {
	inputs := []string{
		`<Button Content="Hi"/>`,
		"hello",
		"<A>",
		"<Button",
		"<StackPanel>\n  <TextBlock/>\n</StackPanel>",
	}
	for _, in := range inputs {
		once := Inject(in)
		assert.Equal(t, once, Inject(once), "input %q", in)
	}
}

func TestScanRoot(t *testing.T) {
	tests := []struct {
		in     string
		want   Boundary
		insert int
	}{
		{`<Button Content="a/b"/>`, Boundary{Space: 7, Slash: 18, Close: 22}, 7},
		{"<A>", Boundary{Space: -1, Slash: -1, Close: 2}, 2},
		{"<A></A>", Boundary{Space: -1, Slash: -1, Close: 2}, 2},
		{"<Sep/>", Boundary{Space: -1, Slash: 4, Close: 5}, 4},
		{"<Button", Boundary{Space: -1, Slash: -1, Close: -1}, -1},
		{"hello", Boundary{Space: -1, Slash: -1, Close: -1}, -1},
		{"<Grid\tRows=\"*\">", Boundary{Space: 5, Slash: -1, Close: 14}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b := ScanRoot(tt.in)
			assert.Equal(t, tt.want, b)
			assert.Equal(t, tt.insert, b.Insert())
		})
	}
}

func TestRootTag(t *testing.T) {
	tag, ok := RootTag(`<ui:InfoBar Title="x"/>`)
	assert.True(t, ok)
	assert.Equal(t, "ui:InfoBar", tag)

	_, ok = RootTag("<Button")
	assert.False(t, ok)
}
