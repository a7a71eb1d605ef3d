package session

import (
	"encoding/base64"
	"time"

	"playground/catalog"
	"playground/debounce"
	"playground/playground"
	"playground/snippet"
)

// remoteEditor mirrors one browser editor. The text is kept server side so
// the controller can read it synchronously.
type remoteEditor struct {
	s         *Session
	pane      snippet.Pane
	listeners []func()
}

func (e *remoteEditor) Value() string {
	e.s.mirrorMu.Lock()
	defer e.s.mirrorMu.Unlock()
	return e.s.mirror.texts[e.pane]
}

func (e *remoteEditor) SetValue(text string) {
	e.store(text)
	e.s.send(Message{Type: MsgSet, Pane: e.pane, Value: text})
	e.notify()
}

// apply records text typed in the browser. It is not echoed back.
func (e *remoteEditor) apply(text string) {
	e.store(text)
	e.notify()
}

func (e *remoteEditor) store(text string) {
	e.s.mirrorMu.Lock()
	e.s.mirror.texts[e.pane] = text
	e.s.mirrorMu.Unlock()
}

func (e *remoteEditor) notify() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *remoteEditor) OnChange(fn func()) {
	e.listeners = append(e.listeners, fn)
}

func (e *remoteEditor) SetOption(name, value string) {
	e.s.mirrorMu.Lock()
	e.s.mirror.options[optionKey{e.pane, name}] = value
	e.s.mirrorMu.Unlock()
	e.s.send(Message{Type: MsgOption, Pane: e.pane, Name: name, Value: value})
}

func (e *remoteEditor) Refresh() {
	e.s.send(Message{Type: MsgRefresh, Pane: e.pane})
}

// remoteView implements the surface, downloader, chrome and viewport
// bindings by forwarding to the browser.
type remoteView struct {
	s *Session
}

func (v remoteView) SetSrcdoc(doc string) {
	v.s.mirrorMu.Lock()
	v.s.mirror.preview = doc
	v.s.mirrorMu.Unlock()
	v.s.send(Message{Type: MsgPreview, Value: doc})
}

func (v remoteView) Download(filename string, data []byte) {
	v.s.send(Message{
		Type: MsgDownload,
		Name: filename,
		Data: base64.StdEncoding.EncodeToString(data),
	})
}

func (v remoteView) ApplyTheme(t snippet.Theme) {
	v.s.mirrorMu.Lock()
	v.s.mirror.theme = t
	v.s.mirrorMu.Unlock()
	v.s.send(themeMessage(t))
}

func (v remoteView) ShowDialog(d playground.Dialog, open bool) {
	v.s.send(Message{Type: MsgDialog, Dialog: d, Open: open})
}

func (v remoteView) ShowMenu(open bool) {
	v.s.send(Message{Type: MsgMenu, Open: open})
}

func (v remoteView) SetTemplates(entries []catalog.Entry) {
	v.s.mirrorMu.Lock()
	v.s.mirror.entries = entries
	v.s.mirrorMu.Unlock()
	v.s.send(Message{Type: MsgTemplates, Entries: entries})
}

func (v remoteView) SetPaneWidth(width float64) {
	v.s.mirrorMu.Lock()
	v.s.mirror.paneWidth = width
	v.s.mirrorMu.Unlock()
	v.s.send(Message{Type: MsgPaneWidth, Width: width})
}

func (v remoteView) SetCursor(cursor string) {
	v.s.send(Message{Type: MsgCursor, Value: cursor})
}

func (v remoteView) SetFullscreen(p snippet.Pane, on bool) {
	v.s.mirrorMu.Lock()
	if on {
		v.s.mirror.fullscreen = p
	} else if v.s.mirror.fullscreen == p {
		v.s.mirror.fullscreen = ""
	}
	v.s.mirrorMu.Unlock()
	v.s.send(Message{Type: MsgFullscreen, Pane: p, Open: on})
}

// Geometry is reported by the browser before pointer events and only read
// on the event loop, so it needs no lock.
func (v remoteView) Width() float64    { return v.s.viewport.width }
func (v remoteView) PaneLeft() float64 { return v.s.viewport.left }

func themeMessage(t snippet.Theme) Message {
	return Message{Type: MsgTheme, Theme: t, Icon: t.Icon()}
}

// loopClock runs timer callbacks on the session's event loop.
type loopClock struct {
	s    *Session
	base debounce.Clock
}

func (c loopClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	return c.base.AfterFunc(d, func() { c.s.Post(f) })
}
