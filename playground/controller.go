// Package playground implements the live coding playground controller: it
// keeps the editors, preview, persisted state and page chrome in step.
//
// A Controller is not safe for concurrent use. All Dispatch calls, editor
// change notifications and clock callbacks must arrive on one goroutine.
package playground

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"playground/debounce"
	"playground/snippet"
)

// Layout limits for the editors pane.
const (
	MinPaneWidth   = 300
	ViewportMargin = 100
)

// DefaultRefreshDelay gives a resized container time to settle before the
// editor recomputes its layout.
const DefaultRefreshDelay = 200 * time.Millisecond

const resizeCursor = "ew-resize"

// Options tunes a Controller.
type Options struct {
	DebounceDelay time.Duration
	RefreshDelay  time.Duration
	Log           *zap.Logger
}

type handlerFunc func(ev Event) error

// Controller owns the application state and reacts to events.
type Controller struct {
	ui       UI
	store    Persister
	clock    debounce.Clock
	log      *zap.Logger
	state    State
	handlers map[EventKind]handlerFunc

	renderLater  *debounce.Scheduler
	refreshDelay time.Duration
}

// New binds a controller to ui. Every pane in snippet.Panes must have an
// editor.
func New(ui UI, store Persister, clock debounce.Clock, opts Options) (*Controller, error) {
	for _, p := range snippet.Panes {
		if ui.Editors[p] == nil {
			return nil, fmt.Errorf("%w: no editor bound for %q", ErrUnknownPane, p)
		}
	}
	if clock == nil {
		clock = debounce.System
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}

	c := &Controller{
		ui:           ui,
		store:        store,
		clock:        clock,
		log:          opts.Log,
		state:        State{Theme: snippet.ThemeDark},
		renderLater:  debounce.NewScheduler(clock, opts.DebounceDelay),
		refreshDelay: opts.RefreshDelay,
	}
	c.handlers = map[EventKind]handlerFunc{
		EventRun:              c.onRun,
		EventToggleTheme:      c.onToggleTheme,
		EventOpenReset:        c.openDialogHandler(DialogReset),
		EventConfirmReset:     c.onConfirmReset,
		EventCancelReset:      c.closeDialogHandler(DialogReset),
		EventOpenExport:       c.openDialogHandler(DialogExport),
		EventConfirmExport:    c.onConfirmExport,
		EventCancelExport:     c.closeDialogHandler(DialogExport),
		EventBackdropClick:    c.onBackdropClick,
		EventToggleMenu:       c.onToggleMenu,
		EventSelectTemplate:   c.onSelectTemplate,
		EventOutsideClick:     c.onOutsideClick,
		EventCatalogLoaded:    c.onCatalogLoaded,
		EventResizeStart:      c.onResizeStart,
		EventPointerMove:      c.onPointerMove,
		EventResizeEnd:        c.onResizeEnd,
		EventContainerResized: c.onContainerResized,
		EventFullscreenOpen:   c.onFullscreenOpen,
		EventFullscreenClose:  c.onFullscreenClose,
	}

	for _, p := range snippet.Panes {
		p := p
		ui.Editors[p].OnChange(func() { c.editorChanged(p) })
	}
	return c, nil
}

// Start applies the stored theme, restores the stored snippet and renders it.
func (c *Controller) Start() {
	theme, err := c.store.LoadTheme()
	if err != nil {
		c.log.Warn("loading theme", zap.Error(err))
	}
	c.state.Theme = theme
	c.applyTheme()

	s, err := c.store.Load()
	if err != nil {
		c.log.Warn("loading snippet", zap.Error(err))
	}
	c.replace(s)
}

// Dispatch routes ev to its handler.
func (c *Controller) Dispatch(ev Event) error {
	h, ok := c.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return h(ev)
}

// Snippet reads the current editor texts.
func (c *Controller) Snippet() snippet.Snippet {
	var s snippet.Snippet
	for _, p := range snippet.Panes {
		s = s.With(p, c.ui.Editors[p].Value())
	}
	return s
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	return c.state
}

// RenderPending reports whether a debounced render is waiting.
func (c *Controller) RenderPending() bool {
	return c.renderLater.Pending()
}

func (c *Controller) editorChanged(p snippet.Pane) {
	c.save()
	if c.state.applying {
		return
	}
	if p == snippet.PaneScript {
		c.renderLater.Schedule(c.render)
		return
	}
	c.render()
}

func (c *Controller) save() {
	if err := c.store.Save(c.Snippet()); err != nil {
		c.log.Warn("saving snippet", zap.Error(err))
	}
}

func (c *Controller) render() {
	c.ui.Surface.SetSrcdoc(snippet.Render(c.Snippet()))
}

// replace loads s into the editors in pane order and renders once.
func (c *Controller) replace(s snippet.Snippet) {
	c.state.applying = true
	for _, p := range snippet.Panes {
		c.ui.Editors[p].SetValue(s.Get(p))
	}
	c.state.applying = false
	c.renderLater.CancelPending()
	c.render()
}

func (c *Controller) applyTheme() {
	scheme := c.state.Theme.EditorScheme()
	for _, p := range snippet.Panes {
		c.ui.Editors[p].SetOption("theme", scheme)
	}
	c.ui.Chrome.ApplyTheme(c.state.Theme)
}

func (c *Controller) onRun(Event) error {
	c.renderLater.CancelPending()
	c.render()
	return nil
}

func (c *Controller) onToggleTheme(Event) error {
	c.state.Theme = c.state.Theme.Toggle()
	if err := c.store.SaveTheme(c.state.Theme); err != nil {
		c.log.Warn("saving theme", zap.Error(err))
	}
	c.applyTheme()
	return nil
}

func (c *Controller) onConfirmReset(Event) error {
	if c.state.Dialog != DialogReset {
		return nil
	}
	c.replace(snippet.Default())
	c.closeDialog(DialogReset)
	return nil
}

func (c *Controller) onConfirmExport(ev Event) error {
	if c.state.Dialog != DialogExport {
		return nil
	}
	name, data := snippet.Export(c.Snippet(), ev.Filename)
	c.ui.Downloader.Download(name, data)
	c.closeDialog(DialogExport)
	return nil
}

func (c *Controller) onBackdropClick(ev Event) error {
	c.closeDialog(ev.Dialog)
	return nil
}

func (c *Controller) openDialogHandler(d Dialog) handlerFunc {
	return func(Event) error {
		c.openDialog(d)
		return nil
	}
}

func (c *Controller) closeDialogHandler(d Dialog) handlerFunc {
	return func(Event) error {
		c.closeDialog(d)
		return nil
	}
}

// openDialog shows d, closing any other open dialog and the template menu.
func (c *Controller) openDialog(d Dialog) {
	if c.state.Dialog == d {
		return
	}
	if c.state.Dialog != DialogNone {
		c.ui.Chrome.ShowDialog(c.state.Dialog, false)
	}
	c.setMenu(false)
	c.state.Dialog = d
	c.ui.Chrome.ShowDialog(d, true)
}

func (c *Controller) closeDialog(d Dialog) {
	if d == DialogNone || c.state.Dialog != d {
		return
	}
	c.state.Dialog = DialogNone
	c.ui.Chrome.ShowDialog(d, false)
}

func (c *Controller) setMenu(open bool) {
	if c.state.MenuOpen == open {
		return
	}
	c.state.MenuOpen = open
	c.ui.Chrome.ShowMenu(open)
}

func (c *Controller) onToggleMenu(Event) error {
	c.setMenu(!c.state.MenuOpen)
	return nil
}

func (c *Controller) onOutsideClick(Event) error {
	c.setMenu(false)
	return nil
}

func (c *Controller) onSelectTemplate(ev Event) error {
	tpl, ok := c.state.Catalog.Lookup(ev.Key)
	if !ok {
		return nil
	}
	c.replace(tpl.Snippet)
	c.setMenu(false)
	return nil
}

// onCatalogLoaded accepts the first catalog only; the catalog is fixed for
// the rest of the session.
func (c *Controller) onCatalogLoaded(ev Event) error {
	if c.state.Catalog != nil || ev.Catalog == nil {
		return nil
	}
	c.state.Catalog = ev.Catalog
	c.ui.Chrome.SetTemplates(ev.Catalog.Entries())
	return nil
}
