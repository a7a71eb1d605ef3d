package playground

import (
	"playground/catalog"
	"playground/snippet"
)

// Editor is one text-editing surface.
type Editor interface {
	Value() string
	// SetValue replaces the text and notifies change subscribers.
	SetValue(text string)
	OnChange(fn func())
	SetOption(name, value string)
	// Refresh asks the editor to recompute its layout after its container
	// changed size.
	Refresh()
}

// Surface is the isolated frame the preview document is assigned to. Each
// assignment replaces the previous document and its script state.
type Surface interface {
	SetSrcdoc(doc string)
}

// Downloader hands a file to the user.
type Downloader interface {
	Download(filename string, data []byte)
}

// Chrome is the page furniture around the editors.
type Chrome interface {
	ApplyTheme(t snippet.Theme)
	ShowDialog(d Dialog, open bool)
	ShowMenu(open bool)
	SetTemplates(entries []catalog.Entry)
	SetPaneWidth(width float64)
	SetCursor(cursor string)
	SetFullscreen(p snippet.Pane, on bool)
}

// Viewport reports page geometry needed while resizing.
type Viewport interface {
	Width() float64
	// PaneLeft is the left edge of the editors pane.
	PaneLeft() float64
}

// UI binds every element handle the controller drives. It is assembled once
// by the caller and can be populated with fakes in tests.
type UI struct {
	Editors    map[snippet.Pane]Editor
	Surface    Surface
	Downloader Downloader
	Chrome     Chrome
	Viewport   Viewport
}

// Persister is the durable store of the snippet and theme.
type Persister interface {
	Save(s snippet.Snippet) error
	Load() (snippet.Snippet, error)
	SaveTheme(t snippet.Theme) error
	LoadTheme() (snippet.Theme, error)
}
