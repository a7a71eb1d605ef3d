package playground_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"playground/catalog"
	"playground/debounce"
	"playground/playground"
	"playground/snippet"
	"playground/store"
)

type fakeEditor struct {
	value     string
	listeners []func()
	options   map[string]string
	refreshes int
}

func (e *fakeEditor) Value() string { return e.value }

func (e *fakeEditor) SetValue(text string) {
	e.value = text
	e.changed()
}

// Type simulates the user editing the text.
func (e *fakeEditor) Type(text string) {
	e.value = text
	e.changed()
}

func (e *fakeEditor) changed() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *fakeEditor) OnChange(fn func()) { e.listeners = append(e.listeners, fn) }

func (e *fakeEditor) SetOption(name, value string) {
	if e.options == nil {
		e.options = map[string]string{}
	}
	e.options[name] = value
}

func (e *fakeEditor) Refresh() { e.refreshes++ }

type fakeSurface struct {
	docs []string
}

func (s *fakeSurface) SetSrcdoc(doc string) { s.docs = append(s.docs, doc) }

func (s *fakeSurface) last() string {
	if len(s.docs) == 0 {
		return ""
	}
	return s.docs[len(s.docs)-1]
}

type download struct {
	name string
	data []byte
}

type fakeDownloader struct {
	downloads []download
}

func (d *fakeDownloader) Download(name string, data []byte) {
	d.downloads = append(d.downloads, download{name, data})
}

type fakeChrome struct {
	theme      snippet.Theme
	dialogs    map[playground.Dialog]bool
	menuOpen   bool
	entries    []catalog.Entry
	paneWidth  float64
	cursor     string
	fullscreen map[snippet.Pane]bool
}

func (c *fakeChrome) ApplyTheme(t snippet.Theme) { c.theme = t }

func (c *fakeChrome) ShowDialog(d playground.Dialog, open bool) {
	if c.dialogs == nil {
		c.dialogs = map[playground.Dialog]bool{}
	}
	c.dialogs[d] = open
}

func (c *fakeChrome) ShowMenu(open bool)                   { c.menuOpen = open }
func (c *fakeChrome) SetTemplates(entries []catalog.Entry) { c.entries = entries }
func (c *fakeChrome) SetPaneWidth(width float64)           { c.paneWidth = width }
func (c *fakeChrome) SetCursor(cursor string)              { c.cursor = cursor }

func (c *fakeChrome) SetFullscreen(p snippet.Pane, on bool) {
	if c.fullscreen == nil {
		c.fullscreen = map[snippet.Pane]bool{}
	}
	c.fullscreen[p] = on
}

type fakeViewport struct {
	width, left float64
}

func (v fakeViewport) Width() float64    { return v.width }
func (v fakeViewport) PaneLeft() float64 { return v.left }

type failingKV struct{}

var errDisk = errors.New("disk on fire")

func (failingKV) Get(string) (string, bool, error) { return "", false, errDisk }
func (failingKV) Set(string, string) error         { return errDisk }

type harness struct {
	ctrl       *playground.Controller
	clock      *debounce.FakeClock
	kv         store.KV
	editors    map[snippet.Pane]*fakeEditor
	surface    *fakeSurface
	downloader *fakeDownloader
	chrome     *fakeChrome
}

func (h *harness) editor(p snippet.Pane) *fakeEditor { return h.editors[p] }

func (h *harness) dispatch(t *testing.T, ev playground.Event) {
	t.Helper()
	if err := h.ctrl.Dispatch(ev); err != nil {
		t.Fatalf("Dispatch(%s): %v", ev.Kind, err)
	}
}

func newHarness(t *testing.T, kv store.KV) *harness {
	t.Helper()
	if kv == nil {
		kv = store.NewMemory()
	}
	h := &harness{
		clock:      debounce.NewFakeClock(),
		kv:         kv,
		editors:    map[snippet.Pane]*fakeEditor{},
		surface:    &fakeSurface{},
		downloader: &fakeDownloader{},
		chrome:     &fakeChrome{},
	}
	ui := playground.UI{
		Editors:    map[snippet.Pane]playground.Editor{},
		Surface:    h.surface,
		Downloader: h.downloader,
		Chrome:     h.chrome,
		Viewport:   fakeViewport{width: 1200, left: 20},
	}
	for _, p := range snippet.Panes {
		h.editors[p] = &fakeEditor{}
		ui.Editors[p] = h.editors[p]
	}
	ctrl, err := playground.New(ui, store.NewPersistence(kv), h.clock, playground.Options{
		DebounceDelay: 300 * time.Millisecond,
		RefreshDelay:  200 * time.Millisecond,
		Log:           zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.ctrl = ctrl
	return h
}

// started returns a harness whose controller has run Start, with the
// startup render discarded.
func started(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, nil)
	h.ctrl.Start()
	h.surface.docs = nil
	return h
}
