package snippet

// Snippet is one playground state: the three editor texts.
type Snippet struct {
	Markup string `json:"html"`
	Style  string `json:"css"`
	Script string `json:"js"`
}

// Default returns the snippet shown on a fresh profile and restored by reset.
func Default() Snippet {
	return Snippet{
		Markup: "<h1>Hello, Playground!</h1>",
		Style:  "h1 { color: red; text-align: center; }",
		Script: "console.log('JS is working');",
	}
}

// Get returns the text held for pane p.
func (s Snippet) Get(p Pane) string {
	switch p {
	case PaneMarkup:
		return s.Markup
	case PaneStyle:
		return s.Style
	case PaneScript:
		return s.Script
	}
	return ""
}

// With returns a copy of s with pane p set to text.
func (s Snippet) With(p Pane, text string) Snippet {
	switch p {
	case PaneMarkup:
		s.Markup = text
	case PaneStyle:
		s.Style = text
	case PaneScript:
		s.Script = text
	}
	return s
}

// Pane identifies one of the three editors.
type Pane string

const (
	PaneMarkup Pane = "html"
	PaneStyle  Pane = "css"
	PaneScript Pane = "js"
)

// Panes lists the editors in the order they are filled on replacement.
var Panes = []Pane{PaneMarkup, PaneStyle, PaneScript}

// Valid reports whether p names a known editor.
func (p Pane) Valid() bool {
	return p == PaneMarkup || p == PaneStyle || p == PaneScript
}

// Mode is the editor language mode for the pane.
func (p Pane) Mode() string {
	switch p {
	case PaneMarkup:
		return "xml"
	case PaneStyle:
		return "css"
	case PaneScript:
		return "javascript"
	}
	return ""
}

// Theme is the light/dark color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored value to a Theme. Only the literal "light" selects
// the light theme; anything else, including an absent value, is dark.
func ParseTheme(v string) Theme {
	if v == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// EditorScheme is the editor widget theme option for t.
func (t Theme) EditorScheme() string {
	if t == ThemeLight {
		return "default"
	}
	return "material-darker"
}

// Icon is the status icon class for t.
func (t Theme) Icon() string {
	if t == ThemeLight {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}
