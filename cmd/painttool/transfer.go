package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/meshpaint/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy paint edits from the SQLite store into the JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transfer(cmd, config.StoreSQLite, config.StoreJSON)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy paint edits from the JSON file into the SQLite store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return transfer(cmd, config.StoreJSON, config.StoreSQLite)
	},
}

var allModels bool

func init() {
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().BoolVarP(&allModels, "all", "a", false, "copy every model, not just --model")
		rootCmd.AddCommand(c)
	}
}

// transfer replaces each selected model's edits in dst with those in src.
func transfer(cmd *cobra.Command, srcKind, dstKind string) error {
	ctx := context.Background()

	src, closeSrc, err := openStore(srcKind)
	if err != nil {
		return err
	}
	defer closeSrc()

	dst, closeDst, err := openStore(dstKind)
	if err != nil {
		return err
	}
	defer closeDst()

	models := []string{modelID}
	if allModels {
		if models, err = src.Models(ctx); err != nil {
			return fmt.Errorf("list %s models: %w", srcKind, err)
		}
	}

	out := cmd.OutOrStdout()
	for _, id := range models {
		edits, err := src.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("load %q from %s: %w", id, srcKind, err)
		}
		if err := dst.Replace(ctx, id, edits); err != nil {
			return fmt.Errorf("write %q to %s: %w", id, dstKind, err)
		}
		fmt.Fprintf(out, "%s: %d edits %s -> %s\n", id, len(edits), srcKind, dstKind)
	}
	return nil
}
