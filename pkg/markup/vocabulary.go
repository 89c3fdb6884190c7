package markup

import "sort"

// Namespace URIs understood by the default vocabulary.
const (
	AvaloniaNamespace = "https://github.com/avaloniaui"
	XamlNamespace     = "http://schemas.microsoft.com/winfx/2006/xaml"
	FluentNamespace   = "using:FluentAvalonia.UI.Controls"
)

// Vocabulary maps namespace URI → type name → whether the type is visual.
type Vocabulary map[string]map[string]bool

// Register adds types to namespace ns.
func (v Vocabulary) Register(ns string, visual bool, names ...string) {
	types, ok := v[ns]
	if !ok {
		types = make(map[string]bool)
		v[ns] = types
	}
	for _, name := range names {
		types[name] = visual
	}
}

// Lookup resolves a type. known is false for unregistered namespaces or names.
func (v Vocabulary) Lookup(ns, name string) (visual, known bool) {
	types, ok := v[ns]
	if !ok {
		return false, false
	}
	visual, known = types[name]
	return visual, known
}

// HasNamespace reports whether ns is registered.
func (v Vocabulary) HasNamespace(ns string) bool {
	_, ok := v[ns]
	return ok
}

// Types returns the sorted type names of a namespace.
func (v Vocabulary) Types(ns string) []string {
	names := make([]string, 0, len(v[ns]))
	for name := range v[ns] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultVocabulary returns the controls and values the playground knows about.
func DefaultVocabulary() Vocabulary {
	v := Vocabulary{}
	v.Register(AvaloniaNamespace, true,
		"Border", "Button", "Calendar", "CalendarDatePicker", "Canvas", "CheckBox",
		"ComboBox", "ComboBoxItem", "ContentControl", "ContextMenu", "DatePicker",
		"DockPanel", "DropDownButton", "Ellipse", "Expander", "Grid", "HyperlinkButton",
		"Image", "ItemsControl", "Label", "Line", "ListBox", "ListBoxItem", "Menu",
		"MenuItem", "NumericUpDown", "Panel", "Path", "ProgressBar", "RadioButton",
		"Rectangle", "RepeatButton", "ScrollViewer", "SelectableTextBlock", "Separator",
		"Slider", "SplitButton", "StackPanel", "TabControl", "TabItem", "TextBlock",
		"TextBox", "TimePicker", "ToggleButton", "ToggleSwitch", "ToolTip", "TreeView",
		"TreeViewItem", "UniformGrid", "UserControl", "Viewbox", "WrapPanel",
	)
	v.Register(AvaloniaNamespace, false,
		"Bold", "ColumnDefinition", "GradientStop", "Italic", "LinearGradientBrush",
		"LineBreak", "RadialGradientBrush", "ResourceDictionary", "RowDefinition", "Run",
		"Setter", "SolidColorBrush", "Span", "Style", "Styles", "Thickness", "Underline",
	)
	v.Register(XamlNamespace, false,
		"Boolean", "Double", "Int32", "Null", "String",
	)
	v.Register(FluentNamespace, true,
		"FontIcon", "InfoBadge", "InfoBar", "NavigationView", "NavigationViewItem",
		"NumberBox", "SettingsExpander", "SymbolIcon",
	)
	v.Register(FluentNamespace, false,
		"SymbolIconSource",
	)
	return v
}
