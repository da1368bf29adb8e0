package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/meshpaint/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write a default viewer config",
	Long:  "Write the default viewer configuration as YAML, to the user config directory unless a path is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.Paint.Store = storeKind
		cfg.Paint.JSONPath = jsonPath
		cfg.Paint.SQLitePath = sqlitePath
		cfg.Paint.ModelID = modelID

		var err error
		path := "config directory"
		if len(args) == 1 {
			path = args[0]
			if _, statErr := os.Stat(path); statErr == nil && !forceConfig {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			err = cfg.SaveTo(path)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote config to %s\n", path)
		return nil
	},
}

var forceConfig bool

func init() {
	configCmd.Flags().BoolVarP(&forceConfig, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(configCmd)
}
