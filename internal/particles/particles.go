// Package particles animates the decorative particle field: autonomous drift with a
// sinusoidal bob, toroidal wraparound, pointer attraction, and spring smoothing.
package particles

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zaidlab/folio/internal/frame"
	"github.com/zaidlab/folio/internal/pointer"
	"github.com/zaidlab/folio/internal/viewport"
)

// Extent is the size of the normalized coordinate space on both axes.
const Extent = 100.0

// Config holds the ranges particles are drawn from and the motion tuning.
type Config struct {
	Count        int
	SizeMin      float64
	SizeMax      float64
	SpeedMax     float64 // units per second on each axis
	AmplitudeMin float64
	AmplitudeMax float64
	FrequencyMin int // whole bobbing cycles per Extent, so a wrapped particle keeps its phase
	FrequencyMax int

	Radius      float64 // attraction radius in normalized units
	MaxStrength float64 // attraction strength at distance 0

	SpringFrequency float64
	SpringDamping   float64
	FPS             int
}

// DefaultConfig returns the stock particle tuning.
func DefaultConfig() Config {
	return Config{
		Count:           25,
		SizeMin:         4,
		SizeMax:         10,
		SpeedMax:        1.5,
		AmplitudeMin:    2,
		AmplitudeMax:    6,
		FrequencyMin:    1,
		FrequencyMax:    3,
		Radius:          25,
		MaxStrength:     0.8,
		SpringFrequency: 6,
		SpringDamping:   1,
		FPS:             frame.DefaultFPS,
	}
}

// Particle holds the immutable parameters of one element.
type Particle struct {
	ID        int
	Origin    pointer.Position
	Size      float64
	Tint      float64 // blend factor between the two palette colours
	VX, VY    float64
	Frequency float64
	Amplitude float64
	CreatedAt time.Time
}

// Color blends the two palette colours by the particle's tint.
func (p Particle) Color(colors [2]string) string {
	a, errA := colorful.Hex(colors[0])
	b, errB := colorful.Hex(colors[1])
	if errA != nil || errB != nil {
		return colors[0]
	}
	return a.BlendRgb(b, p.Tint).Clamped().Hex()
}

// Generate draws particles from rng. Mobile mode scales count, velocity, amplitude and
// frequency down by viewport.MobileScale.
func Generate(rng *rand.Rand, cfg Config, mode viewport.Mode, now time.Time) []Particle {
	scale := viewport.ScaleFor(mode)
	count := int(math.Round(float64(cfg.Count) * scale.Count))
	if cfg.Count > 0 && count < 1 {
		count = 1
	}

	out := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		freq := cfg.FrequencyMin
		if cfg.FrequencyMax > cfg.FrequencyMin {
			freq += rng.Intn(cfg.FrequencyMax - cfg.FrequencyMin + 1)
		}
		scaledFreq := math.Max(1, math.Round(float64(freq)*scale.Frequency))

		out = append(out, Particle{
			ID:        i,
			Origin:    pointer.Position{X: rng.Float64() * Extent, Y: rng.Float64() * Extent},
			Size:      between(rng, cfg.SizeMin, cfg.SizeMax),
			Tint:      rng.Float64(),
			VX:        between(rng, -cfg.SpeedMax, cfg.SpeedMax) * scale.Velocity,
			VY:        between(rng, -cfg.SpeedMax, cfg.SpeedMax) * scale.Velocity,
			Frequency: scaledFreq,
			Amplitude: between(rng, cfg.AmplitudeMin, cfg.AmplitudeMax) * scale.Amplitude,
			CreatedAt: now,
		})
	}
	return out
}

// Wrap folds v into [0, Extent).
func Wrap(v float64) float64 {
	w := math.Mod(v, Extent)
	if w < 0 {
		w += Extent
	}
	if w >= Extent {
		w = 0
	}
	return w
}

// Base returns the wrapped autonomous position of p after elapsed time.
func Base(p Particle, elapsed time.Duration) pointer.Position {
	t := math.Max(0, elapsed.Seconds())
	x := Wrap(p.Origin.X + p.VX*t)
	bob := p.Amplitude * math.Sin(2*math.Pi*p.Frequency*x/Extent)
	y := Wrap(p.Origin.Y + p.VY*t + bob)
	return pointer.Position{X: x, Y: y}
}

// Attraction returns the pull strength at distance d: 0 at or beyond radius, rising
// linearly to maxStrength at 0.
func Attraction(d, radius, maxStrength float64) float64 {
	if radius <= 0 || d >= radius || math.IsNaN(d) {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return maxStrength * (1 - d/radius)
}

// Target nudges base toward the pointer by the attraction strength at their distance.
func Target(base, ptr pointer.Position, radius, maxStrength float64) pointer.Position {
	d := math.Hypot(ptr.X-base.X, ptr.Y-base.Y)
	s := Attraction(d, radius, maxStrength)
	if s == 0 {
		return base
	}
	return pointer.Position{
		X: base.X + s*(ptr.X-base.X),
		Y: base.Y + s*(ptr.Y-base.Y),
	}
}

// Rendered is the smoothed position of a particle for the current frame.
type Rendered struct {
	Particle
	X, Y float64
}

type axisState struct {
	pos, vel float64
}

type state struct {
	x, y  axisState
	ready bool
}

// Field animates a generated set of particles.
type Field struct {
	cfg        Config
	particles  []Particle
	states     []state
	spring     harmonica.Spring
	radius     float64
	strength   float64
	rendered   []Rendered
	lastUpdate time.Time
}

// NewField builds a Field. mode scales the attraction strength.
func NewField(particles []Particle, cfg Config, mode viewport.Mode) *Field {
	fps := cfg.FPS
	if fps <= 0 {
		fps = frame.DefaultFPS
	}
	damping := cfg.SpringDamping
	if damping <= 0 {
		damping = 1
	}
	return &Field{
		cfg:       cfg,
		particles: particles,
		states:    make([]state, len(particles)),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, damping),
		radius:    cfg.Radius,
		strength:  cfg.MaxStrength * viewport.ScaleFor(mode).Attraction,
		rendered:  make([]Rendered, len(particles)),
	}
}

// Particles returns the immutable particle parameters.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Rendered returns the positions computed by the last Step.
func (f *Field) Rendered() []Rendered {
	return f.rendered
}

// Strength returns the effective maximum attraction strength.
func (f *Field) Strength() float64 {
	return f.strength
}

// Targets computes the unsmoothed target of every particle at now.
func (f *Field) Targets(now time.Time, ptr pointer.Position) []pointer.Position {
	out := make([]pointer.Position, len(f.particles))
	for i, p := range f.particles {
		out[i] = Target(Base(p, now.Sub(p.CreatedAt)), ptr, f.radius, f.strength)
	}
	return out
}

// Step advances every particle one frame toward its target. Earlier timestamps than the
// previous step are treated as the previous step.
func (f *Field) Step(now time.Time, ptr pointer.Position) []Rendered {
	if now.Before(f.lastUpdate) {
		now = f.lastUpdate
	}
	f.lastUpdate = now

	for i, target := range f.Targets(now, ptr) {
		st := &f.states[i]
		if !st.ready {
			st.x.pos, st.y.pos = target.X, target.Y
			st.ready = true
		}
		st.x = f.stepAxis(st.x, target.X)
		st.y = f.stepAxis(st.y, target.Y)
		f.rendered[i] = Rendered{Particle: f.particles[i], X: Wrap(st.x.pos), Y: Wrap(st.y.pos)}
	}
	return f.rendered
}

// stepAxis snaps across a toroidal wrap instead of sweeping the spring over the field.
func (f *Field) stepAxis(s axisState, target float64) axisState {
	if math.Abs(target-s.pos) > Extent/2 {
		return axisState{pos: target}
	}
	s.pos, s.vel = f.spring.Update(s.pos, s.vel, target)
	return s
}

// Start subscribes the field to loop, sampling the pointer each frame. The returned cancel
// must be called when the field is unmounted or replaced.
func (f *Field) Start(loop *frame.Loop, ptr func() pointer.Position) (cancel func()) {
	return loop.Subscribe(func(now time.Time) {
		f.Step(now, ptr())
	})
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
