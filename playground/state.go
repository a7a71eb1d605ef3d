package playground

import (
	"playground/catalog"
	"playground/snippet"
)

// Dialog names a confirmation dialog.
type Dialog string

const (
	DialogNone   Dialog = ""
	DialogReset  Dialog = "reset"
	DialogExport Dialog = "export"
)

// State is everything the controller tracks besides the editor texts, which
// the editors themselves hold.
type State struct {
	Theme   snippet.Theme
	Catalog *catalog.Catalog

	// Open dialog; at most one is open at a time.
	Dialog   Dialog
	MenuOpen bool

	Resizing  bool
	PaneWidth float64

	// Fullscreen is the pane currently enlarged, or "".
	Fullscreen snippet.Pane

	// applying is set while the snippet is replaced wholesale so that the
	// resulting change notifications persist but do not render.
	applying bool
}
