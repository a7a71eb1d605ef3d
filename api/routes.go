package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"playground/catalog"
	"playground/session"
)

// Config holds transport settings.
type Config struct {
	// AllowedOrigins for cross-origin API calls; "*" allows any.
	AllowedOrigins []string
	Log            *zap.Logger
}

func RegisterRoutes(manager *session.Manager, templates catalog.Source, staticFS fs.FS, cfg Config) http.Handler {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	h := &handler{manager: manager, templates: templates, log: cfg.Log}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// REST API
	r.Get("/api/sessions", h.listSessions)
	r.Post("/api/sessions", h.createSession)
	r.Delete("/api/sessions/{id}", h.killSession)

	// WebSocket
	r.Get("/api/sessions/{id}/ws", h.handleWS)

	// Templates and export
	r.Get("/templates.json", h.getManifest)
	r.Get("/api/templates", h.listTemplates)
	r.Post("/api/export", h.export)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// In dev mode staticFS is already rooted at the static directory, so Sub
	// returns a wrapper unconditionally (no error) but the sub-FS would look
	// for static/static/* which doesn't exist. Probe index.html to detect this.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Using http.FileServer with r.URL.Path ending in "index.html" triggers
	// Go's built-in redirect to "./", so the page is read manually.
	r.Get("/", serveFile(staticSub, "index.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	manager   *session.Manager
	templates catalog.Source
	log       *zap.Logger
}
