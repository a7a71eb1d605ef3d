package playground

import (
	"errors"

	"playground/catalog"
	"playground/snippet"
)

// EventKind names a user or runtime event.
type EventKind string

const (
	EventRun              EventKind = "run"
	EventToggleTheme      EventKind = "toggle-theme"
	EventOpenReset        EventKind = "open-reset"
	EventConfirmReset     EventKind = "confirm-reset"
	EventCancelReset      EventKind = "cancel-reset"
	EventOpenExport       EventKind = "open-export"
	EventConfirmExport    EventKind = "confirm-export"
	EventCancelExport     EventKind = "cancel-export"
	EventBackdropClick    EventKind = "backdrop-click"
	EventToggleMenu       EventKind = "toggle-menu"
	EventSelectTemplate   EventKind = "select-template"
	EventOutsideClick     EventKind = "outside-click"
	EventCatalogLoaded    EventKind = "catalog-loaded"
	EventResizeStart      EventKind = "resize-start"
	EventPointerMove      EventKind = "pointer-move"
	EventResizeEnd        EventKind = "resize-end"
	EventContainerResized EventKind = "container-resized"
	EventFullscreenOpen   EventKind = "fullscreen-open"
	EventFullscreenClose  EventKind = "fullscreen-close"
)

// Event carries a kind and whichever argument that kind uses.
type Event struct {
	Kind     EventKind    `json:"event"`
	Pane     snippet.Pane `json:"pane,omitempty"`
	Key      string       `json:"key,omitempty"`
	Filename string       `json:"filename,omitempty"`
	Dialog   Dialog       `json:"dialog,omitempty"`
	X        float64      `json:"x,omitempty"`

	Catalog *catalog.Catalog `json:"-"`
}

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrUnknownPane  = errors.New("unknown pane")
)
