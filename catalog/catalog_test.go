package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"playground/catalog"
	"playground/snippet"
)

const manifest = `{
  "zeta":  {"title": "Zeta",  "html": "<p>z</p>", "css": "p{}", "js": "z()"},
  "alpha": {"title": "Alpha", "html": "<p>a</p>"},
  "mid":   {"title": "Mid",   "html": "", "css": "", "js": "", "extra": 1}
}`

func TestParseKeepsManifestOrder(t *testing.T) {
	c, err := catalog.Parse(strings.NewReader(manifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []catalog.Entry{
		{Key: "zeta", Title: "Zeta"},
		{Key: "alpha", Title: "Alpha"},
		{Key: "mid", Title: "Mid"},
	}
	if diff := cmp.Diff(want, c.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMissingFieldsAreEmpty(t *testing.T) {
	c, err := catalog.Parse(strings.NewReader(manifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tpl, ok := c.Lookup("alpha")
	if !ok {
		t.Fatal("alpha not found")
	}
	want := snippet.Snippet{Markup: "<p>a</p>"}
	if tpl.Snippet != want {
		t.Fatalf("expected %+v, got %+v", want, tpl.Snippet)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Fatal("lookup of unknown key succeeded")
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, in := range []string{"", "[]", "42", `{"a": {"title": "x"}`} {
		if _, err := catalog.Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error parsing %q", in)
		}
	}
}

func TestParseKeepsMalformedEntries(t *testing.T) {
	in := `{
	  "good":     {"title": "Good", "html": "<p>g</p>", "css": "", "js": "g()"},
	  "numtitle": {"title": 5, "html": "<p>n</p>"},
	  "bad":      1,
	  "last":     {"title": "Last"}
	}`
	c, err := catalog.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []catalog.Entry{
		{Key: "good", Title: "Good"},
		{Key: "numtitle", Title: ""},
		{Key: "bad", Title: ""},
		{Key: "last", Title: "Last"},
	}
	if diff := cmp.Diff(want, c.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	good, _ := c.Lookup("good")
	if good.Snippet != (snippet.Snippet{Markup: "<p>g</p>", Script: "g()"}) {
		t.Errorf("good entry damaged: %+v", good.Snippet)
	}
	partial, _ := c.Lookup("numtitle")
	if partial.Snippet.Markup != "<p>n</p>" {
		t.Errorf("expected usable fields kept, got %+v", partial.Snippet)
	}
	bad, ok := c.Lookup("bad")
	if !ok || bad.Snippet != (snippet.Snippet{}) {
		t.Errorf("expected empty template for non-object entry, got %+v, %v", bad, ok)
	}
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *catalog.Catalog
	if c.Len() != 0 || len(c.Entries()) != 0 {
		t.Fatal("nil catalog should be empty")
	}
	if _, ok := c.Lookup("x"); ok {
		t.Fatal("nil catalog lookup succeeded")
	}
}

func TestMarshalKeepsOrder(t *testing.T) {
	c, _ := catalog.Parse(strings.NewReader(manifest))
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := catalog.Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Parse marshalled: %v", err)
	}
	if diff := cmp.Diff(c.Templates(), again.Templates()); diff != "" {
		t.Fatalf("templates changed (-want +got):\n%s", diff)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	os.WriteFile(path, []byte(manifest), 0644)

	c, err := catalog.SourceFor(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 templates, got %d", c.Len())
	}

	if _, err := catalog.FileSource(path + ".missing").Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/templates.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(manifest))
	}))
	defer srv.Close()

	src := catalog.SourceFor(srv.URL + "/templates.json")
	c, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 templates, got %d", c.Len())
	}

	if _, err := catalog.SourceFor(srv.URL + "/nope.json").Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 404 manifest")
	}
}
