package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"playground/catalog"
	"playground/snippet"
)

// getManifest serves the template manifest. An unavailable manifest is
// served as an empty object so the menu simply stays empty.
func (h *handler) getManifest(w http.ResponseWriter, r *http.Request) {
	c := h.fetchCatalog(r)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	c := h.fetchCatalog(r)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c.Entries())
}

func (h *handler) fetchCatalog(r *http.Request) *catalog.Catalog {
	if h.templates == nil {
		return catalog.Empty()
	}
	c, err := h.templates.Fetch(r.Context())
	if err != nil {
		h.log.Info("template manifest unavailable", zap.Error(err))
		return catalog.Empty()
	}
	return c
}

type exportRequest struct {
	snippet.Snippet
	Filename string `json:"filename"`
}

// export returns the standalone document for the posted snippet as a file
// download. Nothing is stored.
func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, data := snippet.Export(req.Snippet, req.Filename)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
