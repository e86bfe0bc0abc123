// Command scenecheck validates scene files and prints what they place.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chatscene/render"
	"chatscene/scene"
)

var rootCmd = &cobra.Command{
	Use:          "scenecheck SCENE.toml...",
	Short:        "Validate scene files",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if err := check(cmd.OutOrStdout(), path); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scene files invalid", failed, len(args))
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(w io.Writer, path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	terrain := render.Terrain(s.TerrainSize, render.NoiseHeight(s.TerrainSeed, 1.5))

	fmt.Fprintf(w, "%s: ok\n", path)
	fmt.Fprintf(w, "  camera   %v\n", s.CameraStart)
	fmt.Fprintf(w, "  light    pos=%v ambient=%v diffuse=%v\n", s.LightPos, s.Ambient, s.Diffuse)
	fmt.Fprintf(w, "  terrain  %dx%d seed=%d (%d triangles)\n", s.TerrainSize, s.TerrainSize, s.TerrainSeed, len(terrain.Indices)/3)
	fmt.Fprintf(w, "  cubes    %d\n", len(s.Cubes))
	for i, c := range s.Cubes {
		fmt.Fprintf(w, "    [%d] %v\n", i, c)
	}
	return nil
}
