package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playground/catalog"
	"playground/snippet"
	"playground/store"
)

var (
	exportProfile  string
	exportTemplate string
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a standalone HTML document for a profile or template",
	Long: `Exports the snippet stored for a browser profile (--profile) or a catalog
template (--template) as a single self-contained HTML file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (exportProfile == "") == (exportTemplate == "") {
			return fmt.Errorf("exactly one of --profile or --template is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var s snippet.Snippet
		if exportProfile != "" {
			s, err = profileSnippet(cfg.StorePath, exportProfile)
		} else {
			s, err = templateSnippet(cmd.Context(), cfg.Templates, exportTemplate)
		}
		if err != nil {
			return err
		}

		name, doc := snippet.Export(s, exportOutput)
		if err := os.WriteFile(name, doc, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", name, len(doc))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportProfile, "profile", "", "profile id whose stored snippet to export")
	exportCmd.Flags().StringVar(&exportTemplate, "template", "", "catalog template key to export")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", snippet.DefaultExportName, "output file name")
	rootCmd.AddCommand(exportCmd)
}

func profileSnippet(path, profile string) (snippet.Snippet, error) {
	if path == "" {
		return snippet.Snippet{}, fmt.Errorf("store_path is not configured")
	}
	db, err := store.Open(path)
	if err != nil {
		return snippet.Snippet{}, err
	}
	defer db.Close()

	kv, err := db.Profile(profile)
	if err != nil {
		return snippet.Snippet{}, err
	}
	return store.NewPersistence(kv).Load()
}

func templateSnippet(ctx context.Context, location, key string) (snippet.Snippet, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := catalog.SourceFor(location).Fetch(ctx)
	if err != nil {
		return snippet.Snippet{}, fmt.Errorf("loading templates: %w", err)
	}
	t, ok := c.Lookup(key)
	if !ok {
		return snippet.Snippet{}, fmt.Errorf("template %q: %w", key, catalog.ErrNotFound)
	}
	return t.Snippet, nil
}
