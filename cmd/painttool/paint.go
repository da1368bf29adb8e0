package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/meshpaint/internal/brush"
	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/paintsync"
)

var paintCmd = &cobra.Command{
	Use:   "paint [--] <x,y,z>",
	Short: "Apply one brush stroke at a local-space point and store it",
	Long: `Mount the model's stored edits, apply a single stroke centered on the given
local-space point and forward the changed vertices to the paint store.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaint,
}

var (
	paintColor string
	paintSize  int
)

func init() {
	def := config.Default()
	paintCmd.Flags().StringVarP(&paintColor, "color", "c", def.Brush.Color, "brush color (#rrggbb)")
	paintCmd.Flags().IntVarP(&paintSize, "size", "s", def.Brush.Size, "brush size (1-100)")
	rootCmd.AddCommand(paintCmd)
}

func runPaint(cmd *cobra.Command, args []string) error {
	center, err := parseVec(args[0])
	if err != nil {
		return err
	}
	color, err := paintsync.ParseHex(paintColor)
	if err != nil {
		return fmt.Errorf("brush color: %w", err)
	}
	state := brush.State{Color: color.Array(), Size: brush.ClampSize(paintSize)}

	mesh, err := buildMesh(modelID)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(storeKind)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	ps := paintsync.New(store, modelID)
	report, err := ps.Mount(ctx, mesh)
	if err != nil {
		return err
	}
	defer ps.Unmount()

	diff := brush.Paint(mesh, state.Stroke(center))
	ps.Forward(ctx, diff)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stroke at %s, radius %.3f, color %s\n", formatVec(center), state.Radius(), color.Hex())
	fmt.Fprintf(out, "  Changed vertices: %d\n", len(diff))
	fmt.Fprintf(out, "  Stored edits: %d\n", len(ps.Edits()))
	if !report.OK() {
		fmt.Fprintf(out, "  Rejected stored entries: %d\n", len(report.Diagnostics))
	}
	if ps.Stats().Failed > 0 {
		return fmt.Errorf("store rejected the stroke for %q", modelID)
	}
	return nil
}
