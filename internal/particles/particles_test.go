package particles

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zaidlab/folio/internal/frame"
	"github.com/zaidlab/folio/internal/pointer"
	"github.com/zaidlab/folio/internal/viewport"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestWrapStaysInRange(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 99.999, 100, 250.5, -0.001, -100, -350.25, 1e9, -1e9} {
		w := Wrap(v)
		require.GreaterOrEqual(t, w, 0.0, "wrap(%v)", v)
		require.Less(t, w, Extent, "wrap(%v)", v)
	}
	require.InDelta(t, 50.5, Wrap(250.5), 1e-9)
	require.InDelta(t, 99.0, Wrap(-1), 1e-9)
}

func TestBasePositionIsToroidal(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0)
	particles := Generate(newRand(), DefaultConfig(), viewport.Desktop, start)
	for _, p := range particles {
		for _, elapsed := range []time.Duration{0, time.Second, 37 * time.Second, time.Hour, 1000 * time.Hour} {
			pos := Base(p, elapsed)
			require.GreaterOrEqual(t, pos.X, 0.0)
			require.Less(t, pos.X, Extent)
			require.GreaterOrEqual(t, pos.Y, 0.0)
			require.Less(t, pos.Y, Extent)
		}
	}
}

func TestBaseKeepsPhaseAcrossHorizontalWrap(t *testing.T) {
	t.Parallel()

	p := Particle{Origin: pointer.Position{X: 90, Y: 50}, VX: 10, Frequency: 2, Amplitude: 5}
	before := Base(p, 0)
	after := Base(p, 10*time.Second)

	require.InDelta(t, before.X, after.X, 1e-9)
	require.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestAttractionProfile(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.8, Attraction(0, 25, 0.8))
	require.Equal(t, 0.0, Attraction(25, 25, 0.8))
	require.Equal(t, 0.0, Attraction(40, 25, 0.8))
	require.Equal(t, 0.0, Attraction(math.NaN(), 25, 0.8))
	require.Equal(t, 0.0, Attraction(1, 0, 0.8))
	require.InDelta(t, 0.4, Attraction(12.5, 25, 0.8), 1e-9)

	prev := Attraction(0, 25, 0.8)
	for d := 0.5; d <= 25; d += 0.5 {
		s := Attraction(d, 25, 0.8)
		require.LessOrEqual(t, s, prev, "strength must not increase with distance (d=%v)", d)
		prev = s
	}
}

func TestTargetAtPointerEqualsBase(t *testing.T) {
	t.Parallel()

	base := pointer.Position{X: 50, Y: 50}
	got := Target(base, pointer.Position{X: 50, Y: 50}, 25, 0.8)
	require.Equal(t, base, got)
}

func TestTargetPullsTowardPointer(t *testing.T) {
	t.Parallel()

	base := pointer.Position{X: 40, Y: 50}
	ptr := pointer.Position{X: 50, Y: 50}
	got := Target(base, ptr, 25, 0.8)

	// d = 10, strength = 0.8 * (1 - 10/25) = 0.48
	require.InDelta(t, 44.8, got.X, 1e-9)
	require.InDelta(t, 50.0, got.Y, 1e-9)

	far := Target(base, pointer.Position{X: 90, Y: 90}, 25, 0.8)
	require.Equal(t, base, far)
}

func TestGenerateIsDeterministicAndRespectsRanges(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	now := time.Unix(5, 0)
	a := Generate(newRand(), cfg, viewport.Desktop, now)
	b := Generate(newRand(), cfg, viewport.Desktop, now)
	require.Equal(t, a, b)
	require.Len(t, a, cfg.Count)

	for _, p := range a {
		require.GreaterOrEqual(t, p.Size, cfg.SizeMin)
		require.LessOrEqual(t, p.Size, cfg.SizeMax)
		require.LessOrEqual(t, math.Abs(p.VX), cfg.SpeedMax)
		require.GreaterOrEqual(t, p.Frequency, float64(cfg.FrequencyMin))
		require.LessOrEqual(t, p.Frequency, float64(cfg.FrequencyMax))
		require.Equal(t, p.Frequency, math.Round(p.Frequency))
		require.Equal(t, now, p.CreatedAt)
	}
}

func TestGenerateMobileReducesMotion(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	desktop := Generate(newRand(), cfg, viewport.Desktop, time.Time{})
	mobile := Generate(newRand(), cfg, viewport.Mobile, time.Time{})
	require.Less(t, len(mobile), len(desktop))

	maxSpeed := cfg.SpeedMax * viewport.MobileScale.Velocity
	for _, p := range mobile {
		require.LessOrEqual(t, math.Abs(p.VX), maxSpeed+1e-9)
		require.LessOrEqual(t, p.Amplitude, cfg.AmplitudeMax*viewport.MobileScale.Amplitude+1e-9)
	}

	field := NewField(mobile, cfg, viewport.Mobile)
	require.InDelta(t, cfg.MaxStrength*viewport.MobileScale.Attraction, field.Strength(), 1e-9)
}

func TestFieldStepConvergesToTarget(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	start := time.Unix(0, 0)
	p := Particle{Origin: pointer.Position{X: 40, Y: 50}, CreatedAt: start}
	field := NewField([]Particle{p}, cfg, viewport.Desktop)

	first := field.Step(start, pointer.Position{X: 0, Y: 0})
	require.InDelta(t, 40.0, first[0].X, 1e-9, "first frame starts on the target")

	ptr := pointer.Position{X: 50, Y: 50}
	var last Rendered
	for i := 1; i <= 120; i++ {
		last = field.Step(start.Add(time.Duration(i)*time.Second/30), ptr)[0]
		require.LessOrEqual(t, last.X, 44.8+1e-6, "critically damped filter does not overshoot")
	}
	require.InDelta(t, 44.8, last.X, 0.01)
}

func TestFieldSnapsAcrossWrap(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0)
	p := Particle{Origin: pointer.Position{X: 99.5, Y: 10}, VX: 1, CreatedAt: start}
	field := NewField([]Particle{p}, DefaultConfig(), viewport.Desktop)

	far := pointer.Position{X: 50, Y: 90}
	field.Step(start, far)
	got := field.Step(start.Add(time.Second), far)[0]
	require.InDelta(t, 0.5, got.X, 1e-6)
}

func TestFieldStartAndCancel(t *testing.T) {
	t.Parallel()

	loop := frame.NewLoop(30)
	particles := Generate(newRand(), DefaultConfig(), viewport.Desktop, time.Unix(0, 0))
	field := NewField(particles, DefaultConfig(), viewport.Desktop)

	samples := 0
	cancel := field.Start(loop, func() pointer.Position {
		samples++
		return pointer.Center
	})
	loop.Tick(time.Unix(1, 0))
	require.Equal(t, 1, samples)
	require.NotZero(t, field.Rendered()[0].Size)

	cancel()
	loop.Tick(time.Unix(2, 0))
	require.Equal(t, 1, samples)
	require.False(t, loop.Active())
}

func TestParticleColor(t *testing.T) {
	t.Parallel()

	p := Particle{Tint: 0}
	require.Equal(t, "#ff0000", p.Color([2]string{"#ff0000", "#0000ff"}))
	p.Tint = 1
	require.Equal(t, "#0000ff", p.Color([2]string{"#ff0000", "#0000ff"}))
	require.Equal(t, "bogus", p.Color([2]string{"bogus", "#0000ff"}))
}

func TestWriteSVG(t *testing.T) {
	t.Parallel()

	particles := Generate(newRand(), DefaultConfig(), viewport.Desktop, time.Unix(0, 0))
	field := NewField(particles, DefaultConfig(), viewport.Desktop)

	var buf bytes.Buffer
	err := field.WriteSVG(&buf, SnapshotOptions{
		Width:      320,
		Height:     200,
		Elapsed:    3 * time.Second,
		Pointer:    pointer.Center,
		Background: "#0b1120",
		Colors:     [2]string{"#3b82f6", "#a855f7"},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Equal(t, len(particles), strings.Count(out, "<circle"))

	require.Error(t, field.WriteSVG(&buf, SnapshotOptions{}))
}
