// polyspin - Spinning polyhedra in your terminal
// Rasterizes rotating solids into a grid of glyphs with a depth test.
//
// Controls (spin):
//
//	W/S, Up/Down    - Pitch
//	A/D, Left/Right - Yaw
//	Q/E             - Roll left/right
//	Space           - Apply random impulse
//	R               - Reset rotation
//	X               - Toggle wireframe mode (x-ray)
//	Esc, Ctrl+C     - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "polyspin",
		Short: "Spinning polyhedra rendered as ASCII",
		Long: "polyspin rasterizes rotating solids into a 50x50 grid of glyphs,\n" +
			"keeping the nearest face in every cell.",
		SilenceUsage: true,
	}
	root.AddCommand(
		newSpinCmd(),
		newFrameCmd(),
		newSnapshotCmd(),
		newExportCmd(),
		newListCmd(),
	)
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in solids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listSolids(cmd.OutOrStdout())
		},
	}
}

func newFrameCmd() *cobra.Command {
	opts := defaultOptions()
	var steps int
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print one frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fb, err := renderStill(opts, cmd.InOrStdin(), steps)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), fb.Serialize(opts.doubleWidth()))
			return err
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().IntVar(&steps, "steps", 0, "Animation steps to run before rendering")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	opts := defaultOptions()
	var steps, scale int
	cmd := &cobra.Command{
		Use:   "snapshot <out.png|out.webp>",
		Short: "Render one frame to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := renderStill(opts, cmd.InOrStdin(), steps)
			if err != nil {
				return err
			}
			if err := fb.SaveImage(args[0], opts.doubleWidth(), scale); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", args[0])
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().IntVar(&steps, "steps", 0, "Animation steps to run before rendering")
	cmd.Flags().IntVar(&scale, "scale", 2, "Integer upscale factor")
	return cmd
}

func newExportCmd() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "export <out.glb>",
		Short: "Write the selected solid as binary glTF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSolid(opts, cmd.InOrStdin(), args[0])
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newSpinCmd() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Animate a solid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.fps < 1 {
				return fmt.Errorf("fps must be positive, got %d", opts.fps)
			}
			solid, err := opts.loadSolid(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if opts.plain {
				return runPlain(cmd.Context(), cmd.OutOrStdout(), solid, opts)
			}
			return runInteractive(cmd.Context(), solid, opts)
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().IntVar(&opts.fps, "fps", 30, "Target FPS")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Repaint with clear-screen frames instead of the full-screen view")
	cmd.Flags().IntVar(&opts.frames, "frames", 0, "Stop after this many frames in plain mode (0 runs forever)")
	return cmd
}
