package particles

import (
	"fmt"
	"io"
	"math"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/zaidlab/folio/internal/pointer"
)

// SnapshotOptions describes a still image of the field.
type SnapshotOptions struct {
	Width      int
	Height     int
	Elapsed    time.Duration
	Pointer    pointer.Position
	Background string
	Colors     [2]string
}

// WriteSVG renders the field's targets after opts.Elapsed as an SVG document. Particle size
// is treated as a diameter in pixels.
func (f *Field) WriteSVG(w io.Writer, opts SnapshotOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", opts.Width, opts.Height)
	}

	var start time.Time
	if len(f.particles) > 0 {
		start = f.particles[0].CreatedAt
	}
	targets := f.Targets(start.Add(opts.Elapsed), opts.Pointer)

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	if opts.Background != "" {
		canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+opts.Background)
	}
	for i, pos := range targets {
		p := f.particles[i]
		cx := int(math.Round(pos.X / Extent * float64(opts.Width)))
		cy := int(math.Round(pos.Y / Extent * float64(opts.Height)))
		r := int(math.Max(1, math.Round(p.Size/2)))
		canvas.Circle(cx, cy, r, fmt.Sprintf("fill:%s;fill-opacity:0.6", p.Color(opts.Colors)))
	}
	canvas.End()
	return nil
}
