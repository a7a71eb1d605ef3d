package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"playground/api"
	"playground/catalog"
	"playground/config"
	"playground/session"
	"playground/store"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the playground web server",
	Long:  `Starts the HTTP server hosting the playground page, its websocket sessions and the template catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := cfg.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		profiles, closeStore, err := openProfiles(cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		templates := templateSource(ctx, cfg, log)

		manager := session.NewManager(session.Options{
			Profiles:      profiles,
			Templates:     templates,
			DebounceDelay: cfg.Debounce(),
			RefreshDelay:  cfg.RefreshDelay(),
			IdleTimeout:   cfg.IdleTimeout(),
			Log:           log,
		})
		defer manager.Close()

		var static fs.FS = assets
		if cfg.Dev {
			static = os.DirFS("static")
		}

		srv := &http.Server{
			Addr: cfg.Addr,
			Handler: api.RegisterRoutes(manager, templates, static, api.Config{
				AllowedOrigins: cfg.AllowedOrigins,
				Log:            log,
			}),
		}

		go func() {
			<-ctx.Done()
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.Info("playground listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openProfiles opens the bolt store, or falls back to memory when no path
// is configured.
func openProfiles(cfg *config.Config, log *zap.Logger) (store.Profiles, func(), error) {
	if cfg.StorePath == "" {
		log.Warn("no store_path configured, playground state will not survive restarts")
		return store.NewMemoryProfiles(), func() {}, nil
	}
	db, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn("closing store", zap.Error(err))
		}
	}, nil
}

// templateSource returns the catalog source for new sessions. Local manifests
// are held by a catalog.Manager so they can be watched; URLs are fetched per
// session. A broken manifest never stops the server; it only empties the menu.
func templateSource(ctx context.Context, cfg *config.Config, log *zap.Logger) catalog.Source {
	src := catalog.SourceFor(cfg.Templates)
	if _, remote := src.(catalog.HTTPSource); remote {
		return src
	}
	cm := catalog.NewManager(cfg.Templates, log)
	log.Info("templates loaded", zap.String("path", cfg.Templates), zap.Int("count", cm.Get().Len()))
	if cfg.WatchTemplates {
		if err := cm.Watch(ctx); err != nil {
			log.Warn("template manifest will not be watched", zap.Error(err))
		}
	}
	return cm
}
