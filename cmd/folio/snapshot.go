package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/particles"
	"github.com/zaidlab/folio/internal/pointer"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/viewport"
)

type snapshotOptions struct {
	out         string
	contentPath string
	seed        int64
	at          time.Duration
	mobile      bool
	dark        bool
	width       int
	height      int
}

func newSnapshotCmd() *cobra.Command {
	opts := snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the particle field as an SVG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.out == "" {
				return newCommandError("write snapshot", "no output path", fmt.Errorf("--out is required"), "Pass --out field.svg, or --out - for stdout.")
			}
			return runSnapshot(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output SVG path, - for stdout")
	cmd.Flags().StringVarP(&opts.contentPath, "content", "c", "", "Content file with motion settings")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Particle seed")
	cmd.Flags().DurationVar(&opts.at, "at", 0, "Elapsed animation time")
	cmd.Flags().BoolVar(&opts.mobile, "mobile", false, "Use the mobile particle scale")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "Use the dark palette")
	cmd.Flags().IntVar(&opts.width, "width", 800, "Image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 600, "Image height in pixels")

	return cmd
}

func runSnapshot(cmd *cobra.Command, opts snapshotOptions) error {
	content, err := config.Load(opts.contentPath)
	if err != nil {
		return newCommandError("load content", displayPath(opts.contentPath), err, "Fix the reported field or line and try again.")
	}

	mode := viewport.Desktop
	if opts.mobile {
		mode = viewport.Mobile
	}
	palette := theme.PaletteFor(theme.Light)
	if opts.dark {
		palette = theme.PaletteFor(theme.Dark)
	}

	cfg := content.Settings.ParticleConfig()
	start := time.Unix(0, 0)
	field := particles.NewField(particles.Generate(rand.New(rand.NewSource(opts.seed)), cfg, mode, start), cfg, mode)

	snap := particles.SnapshotOptions{
		Width:      opts.width,
		Height:     opts.height,
		Elapsed:    opts.at,
		Pointer:    pointer.Center,
		Background: string(palette.Background),
		Colors:     palette.Particles,
	}

	if opts.out == "-" {
		return field.WriteSVG(cmd.OutOrStdout(), snap)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return newCommandError("write snapshot", opts.out, err, "Check that the output directory exists and is writable.")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := field.WriteSVG(w, snap); err != nil {
		return newCommandError("render snapshot", opts.out, err, "Pass a positive --width and --height.")
	}
	if err := w.Flush(); err != nil {
		return newCommandError("write snapshot", opts.out, err, "Check free disk space.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.out)
	return nil
}
