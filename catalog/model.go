package catalog

import (
	"errors"

	"playground/snippet"
)

// Template is a named starter snippet.
type Template struct {
	Key     string          `json:"key"`
	Title   string          `json:"title"`
	Snippet snippet.Snippet `json:"snippet"`
}

// Entry is one line of the template menu.
type Entry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// manifestEntry is the wire shape of one template in the manifest.
type manifestEntry struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	CSS   string `json:"css"`
	JS    string `json:"js"`
}

var ErrNotFound = errors.New("template not found")
