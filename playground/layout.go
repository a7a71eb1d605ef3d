package playground

import (
	"fmt"

	"playground/snippet"
)

// ClampPaneWidth bounds width to [MinPaneWidth, viewport-ViewportMargin]. On a
// viewport too narrow for both bounds the minimum wins.
func ClampPaneWidth(width, viewport float64) float64 {
	upper := viewport - ViewportMargin
	if upper < MinPaneWidth {
		upper = MinPaneWidth
	}
	switch {
	case width < MinPaneWidth:
		return MinPaneWidth
	case width > upper:
		return upper
	}
	return width
}

func (c *Controller) refreshAll() {
	for _, p := range snippet.Panes {
		c.ui.Editors[p].Refresh()
	}
}

func (c *Controller) onResizeStart(Event) error {
	c.state.Resizing = true
	c.ui.Chrome.SetCursor(resizeCursor)
	return nil
}

func (c *Controller) onPointerMove(ev Event) error {
	if !c.state.Resizing {
		return nil
	}
	width := ClampPaneWidth(ev.X-c.ui.Viewport.PaneLeft(), c.ui.Viewport.Width())
	if width == c.state.PaneWidth {
		return nil
	}
	c.state.PaneWidth = width
	c.ui.Chrome.SetPaneWidth(width)
	c.refreshAll()
	return nil
}

func (c *Controller) onResizeEnd(Event) error {
	if !c.state.Resizing {
		return nil
	}
	c.state.Resizing = false
	c.ui.Chrome.SetCursor("")
	return nil
}

func (c *Controller) onContainerResized(Event) error {
	c.refreshAll()
	return nil
}

func (c *Controller) onFullscreenOpen(ev Event) error {
	if !ev.Pane.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPane, ev.Pane)
	}
	if c.state.Fullscreen == ev.Pane {
		return nil
	}
	if c.state.Fullscreen != "" {
		c.exitFullscreen()
	}
	c.state.Fullscreen = ev.Pane
	c.ui.Chrome.SetFullscreen(ev.Pane, true)
	c.refreshLater(ev.Pane)
	return nil
}

func (c *Controller) onFullscreenClose(ev Event) error {
	if !ev.Pane.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPane, ev.Pane)
	}
	if c.state.Fullscreen != ev.Pane {
		return nil
	}
	c.exitFullscreen()
	return nil
}

func (c *Controller) exitFullscreen() {
	p := c.state.Fullscreen
	c.state.Fullscreen = ""
	c.ui.Chrome.SetFullscreen(p, false)
	c.refreshLater(p)
}

func (c *Controller) refreshLater(p snippet.Pane) {
	ed := c.ui.Editors[p]
	c.clock.AfterFunc(c.refreshDelay, ed.Refresh)
}
