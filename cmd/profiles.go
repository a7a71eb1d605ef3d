package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"playground/store"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List browser profiles with stored playground state",
	Long:  `Lists the profile ids in the store. Pass one to "playground export --profile".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StorePath == "" {
			return fmt.Errorf("store_path is not configured")
		}
		db, err := store.Open(cfg.StorePath)
		if err != nil {
			return err
		}
		defer db.Close()

		ids, err := db.Profiles()
		if err != nil {
			return fmt.Errorf("listing profiles: %w", err)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
