package session

import (
	"playground/catalog"
	"playground/playground"
	"playground/snippet"
)

// Message types sent by the browser.
const (
	MsgChange   = "change"
	MsgViewport = "viewport"
	MsgEvent    = "event"
)

// Message types sent to the browser.
const (
	MsgSet        = "set"
	MsgOption     = "option"
	MsgRefresh    = "refresh"
	MsgPreview    = "preview"
	MsgDownload   = "download"
	MsgTheme      = "theme"
	MsgDialog     = "dialog"
	MsgMenu       = "menu"
	MsgTemplates  = "templates"
	MsgPaneWidth  = "paneWidth"
	MsgCursor     = "cursor"
	MsgFullscreen = "fullscreen"
	MsgClosed     = "closed"
)

// Message is one websocket frame in either direction.
type Message struct {
	Type    string            `json:"type"`
	Pane    snippet.Pane      `json:"pane,omitempty"`
	Name    string            `json:"name,omitempty"`
	Value   string            `json:"value,omitempty"`
	Data    string            `json:"data,omitempty"` // base64 download body
	Theme   snippet.Theme     `json:"theme,omitempty"`
	Icon    string            `json:"icon,omitempty"`
	Dialog  playground.Dialog `json:"dialog,omitempty"`
	Open    bool              `json:"open,omitempty"`
	Width   float64           `json:"width,omitempty"`
	Left    float64           `json:"left,omitempty"`
	Entries []catalog.Entry   `json:"entries,omitempty"`
	Event   *playground.Event `json:"event,omitempty"`
}
