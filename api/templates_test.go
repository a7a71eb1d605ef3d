package api_test

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"playground/catalog"
	"playground/snippet"
)

func TestGetManifest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/templates.json")
	if err != nil {
		t.Fatalf("GET /templates.json: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	c, err := catalog.Parse(resp.Body)
	if err != nil {
		t.Fatalf("served manifest does not parse: %v", err)
	}
	if diff := cmp.Diff(testCatalog.Templates(), c.Templates()); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestListTemplates(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/templates")
	if err != nil {
		t.Fatalf("GET /api/templates: %v", err)
	}
	defer resp.Body.Close()
	var entries []catalog.Entry
	json.NewDecoder(resp.Body).Decode(&entries)
	want := []catalog.Entry{{Key: "k", Title: "T"}, {Key: "b", Title: "Second"}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func postExport(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/api/export", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/export: %v", err)
	}
	return resp
}

func TestExportEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	for filename, want := range map[string]string{"foo": "foo.html", "foo.html": "foo.html", "": "untitled.html"} {
		body, _ := json.Marshal(map[string]string{
			"html": "<p>e</p>", "css": "p{}", "js": "e()", "filename": filename,
		})
		resp := postExport(t, srv.URL, string(body))
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
		if err != nil {
			t.Fatalf("bad Content-Disposition: %v", err)
		}
		if params["filename"] != want {
			t.Fatalf("filename %q exported as %q, want %q", filename, params["filename"], want)
		}
		_, doc := snippet.Export(snippet.Snippet{Markup: "<p>e</p>", Style: "p{}", Script: "e()"}, filename)
		if string(data) != string(doc) {
			t.Fatalf("unexpected export body:\n%s", data)
		}
	}
}

func TestExportBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := postExport(t, srv.URL, "not-json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
