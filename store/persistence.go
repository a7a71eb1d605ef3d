package store

import (
	"fmt"

	"playground/snippet"
)

// Fixed keys under which a profile's state is stored.
const (
	KeyMarkup = "htmlCode"
	KeyStyle  = "cssCode"
	KeyScript = "jsCode"
	KeyTheme  = "theme"
)

// Persistence mirrors the editor texts and the theme into a KV.
type Persistence struct {
	kv KV
}

// NewPersistence returns a Persistence over kv.
func NewPersistence(kv KV) *Persistence {
	return &Persistence{kv: kv}
}

// Save stores all three texts of s. Empty texts are stored as such.
func (p *Persistence) Save(s snippet.Snippet) error {
	fields := map[string]string{
		KeyMarkup: s.Markup,
		KeyStyle:  s.Style,
		KeyScript: s.Script,
	}
	if b, ok := p.kv.(batchKV); ok {
		if err := b.SetAll(fields); err != nil {
			return fmt.Errorf("saving snippet: %w", err)
		}
		return nil
	}
	for k, v := range fields {
		if err := p.kv.Set(k, v); err != nil {
			return fmt.Errorf("saving %s: %w", k, err)
		}
	}
	return nil
}

// Load returns the stored snippet, or the default snippet when any of its
// fields has never been stored.
func (p *Persistence) Load() (snippet.Snippet, error) {
	var s snippet.Snippet
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyMarkup, &s.Markup},
		{KeyStyle, &s.Style},
		{KeyScript, &s.Script},
	} {
		v, ok, err := p.kv.Get(f.key)
		if err != nil {
			return snippet.Default(), fmt.Errorf("loading %s: %w", f.key, err)
		}
		if !ok {
			return snippet.Default(), nil
		}
		*f.dst = v
	}
	return s, nil
}

// SaveTheme stores t as its literal name.
func (p *Persistence) SaveTheme(t snippet.Theme) error {
	if err := p.kv.Set(KeyTheme, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// LoadTheme returns the stored theme; dark when none is stored.
func (p *Persistence) LoadTheme() (snippet.Theme, error) {
	v, _, err := p.kv.Get(KeyTheme)
	if err != nil {
		return snippet.ThemeDark, fmt.Errorf("loading theme: %w", err)
	}
	return snippet.ParseTheme(v), nil
}
