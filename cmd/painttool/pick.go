package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/meshpaint/internal/camera"
	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/picking"
	"github.com/Faultbox/meshpaint/pkg/math"
)

var pickCmd = &cobra.Command{
	Use:   "pick <px> <py>",
	Short: "Cast a pointer position through the default camera",
	Long:  "Report the triangle, part and hit points under a pixel, as the viewer would see it at startup.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPick,
}

var (
	pickWidth  int
	pickHeight int
	pickLinear bool
)

func init() {
	def := config.Default()
	pickCmd.Flags().IntVar(&pickWidth, "width", def.Window.Width, "viewport width")
	pickCmd.Flags().IntVar(&pickHeight, "height", def.Window.Height, "viewport height")
	pickCmd.Flags().BoolVar(&pickLinear, "linear", false, "scan every triangle instead of using the BVH")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	px, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	py, err := parseFloat(args[1])
	if err != nil {
		return err
	}

	mesh, err := buildMesh(modelID)
	if err != nil {
		return err
	}

	vp := picking.Viewport{Width: float32(pickWidth), Height: float32(pickHeight)}
	orbit := camera.NewOrbitCamera()
	cam := picking.Camera{View: orbit.ViewMatrix(), Projection: orbit.ProjectionMatrix(vp.Aspect())}

	picker := picking.NewPicker(mesh, !pickLinear)
	hit, ok := picker.Pick(cam, vp, px, py, math.Identity())

	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "(%g, %g): no hit\n", px, py)
		return nil
	}

	a := int(mesh.Indices[hit.TriangleIndex*3])
	part, _ := mesh.PartOf(a)
	fmt.Fprintf(out, "(%g, %g): triangle %d (%s)\n", px, py, hit.TriangleIndex, part.Name)
	fmt.Fprintf(out, "  World: %s\n", formatVec(hit.WorldPoint))
	fmt.Fprintf(out, "  Local: %s\n", formatVec(hit.LocalPoint))
	fmt.Fprintf(out, "  Distance: %.6f\n", hit.Distance)
	return nil
}
