// Package catalog loads the template manifest that seeds the template menu.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"playground/snippet"
)

// Catalog maps template keys to templates, in manifest order. A Catalog is
// never modified after construction, so it may be shared between sessions.
type Catalog struct {
	order []string
	items map[string]Template
}

// Empty returns a catalog with no templates.
func Empty() *Catalog {
	return &Catalog{items: map[string]Template{}}
}

// New builds a catalog from templates, keeping their order. A repeated key
// replaces the earlier template but keeps its position.
func New(templates ...Template) *Catalog {
	c := &Catalog{items: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if _, dup := c.items[t.Key]; !dup {
			c.order = append(c.order, t.Key)
		}
		c.items[t.Key] = t
	}
	return c
}

// Parse reads a manifest of the form {"key": {"title", "html", "css", "js"}}.
// Entries are not validated: missing fields read as empty strings, and a
// field or entry of the wrong JSON type keeps its key with that part empty.
// Only a manifest that is not a JSON object is an error.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("manifest must be a JSON object")
	}

	var templates []Template
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading manifest key: %w", err)
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading template %q: %w", key, err)
		}
		e := decodeEntry(raw)
		templates = append(templates, Template{
			Key:   key,
			Title: e.Title,
			Snippet: snippet.Snippet{
				Markup: e.HTML,
				Style:  e.CSS,
				Script: e.JS,
			},
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading manifest end: %w", err)
	}
	return New(templates...), nil
}

// decodeEntry reads whichever string fields of raw are usable.
func decodeEntry(raw json.RawMessage) manifestEntry {
	var e manifestEntry
	if json.Unmarshal(raw, &e) == nil {
		return e
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return manifestEntry{}
	}
	str := func(name string) string {
		var v string
		json.Unmarshal(fields[name], &v)
		return v
	}
	return manifestEntry{
		Title: str("title"),
		HTML:  str("html"),
		CSS:   str("css"),
		JS:    str("js"),
	}
}

// Lookup returns the template stored under key.
func (c *Catalog) Lookup(key string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	t, ok := c.items[key]
	return t, ok
}

// Entries returns the menu entries in manifest order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return []Entry{}
	}
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry{Key: k, Title: c.items[k].Title})
	}
	return entries
}

// Templates returns all templates in manifest order.
func (c *Catalog) Templates() []Template {
	if c == nil {
		return nil
	}
	out := make([]Template, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// MarshalJSON writes the catalog back in manifest shape. Go maps do not keep
// insertion order, so the object is written by hand.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, t := range c.Templates() {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(t.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(manifestEntry{
			Title: t.Title,
			HTML:  t.Snippet.Markup,
			CSS:   t.Snippet.Style,
			JS:    t.Snippet.Script,
		})
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}
