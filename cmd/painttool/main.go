package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/paintstore"
)

var (
	storeKind  string
	jsonPath   string
	sqlitePath string
	modelID    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "painttool",
	Short: "Headless inspection and editing of painted meshes",
	Long: `painttool builds the demo meshes without a window, inspects their parts,
applies brush strokes straight to a paint store and moves paint edits
between the JSON and SQLite backends.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if debug {
			level = "debug"
		}
		return logger.Init(level, "")
	},
}

func init() {
	def := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&storeKind, "store", def.Paint.Store, "paint store backend (json, sqlite, memory)")
	pf.StringVar(&jsonPath, "json", def.Paint.JSONPath, "JSON paint file")
	pf.StringVar(&sqlitePath, "db", def.Paint.SQLitePath, "SQLite paint database")
	pf.StringVarP(&modelID, "model", "m", def.Paint.ModelID, "model ID")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
}

// paintConfig returns the store selection from the persistent flags.
func paintConfig(kind string) config.PaintConfig {
	return config.PaintConfig{
		ModelID:    modelID,
		Store:      kind,
		JSONPath:   jsonPath,
		SQLitePath: sqlitePath,
	}
}

func openStore(kind string) (paintstore.Store, func() error, error) {
	s, closeFn, err := paintstore.Open(paintConfig(kind))
	if err != nil {
		return nil, closeFn, fmt.Errorf("open %s store: %w", kind, err)
	}
	return s, closeFn, nil
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
