package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"playground/catalog"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		c, err := catalog.SourceFor(cfg.Templates).Fetch(ctx)
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE")
		for _, e := range c.Entries() {
			fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Title)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
