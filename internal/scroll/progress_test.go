package scroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var testStops = [3]string{"#ff0000", "#00ff00", "#0000ff"}

func TestProgressIsClamped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		offset, doc, v float64
		want           float64
	}{
		{name: "top", offset: 0, doc: 100, v: 20, want: 0},
		{name: "middle", offset: 40, doc: 100, v: 20, want: 0.5},
		{name: "bottom", offset: 80, doc: 100, v: 20, want: 1},
		{name: "overscroll", offset: 500, doc: 100, v: 20, want: 1},
		{name: "negative offset", offset: -10, doc: 100, v: 20, want: 0},
		{name: "document equals viewport", offset: 0, doc: 20, v: 20, want: 0},
		{name: "document shorter than viewport", offset: 5, doc: 10, v: 20, want: 0},
		{name: "nan offset", offset: math.NaN(), doc: 100, v: 20, want: 0},
		{name: "infinite document", offset: 10, doc: math.Inf(1), v: 20, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Progress(tc.offset, tc.doc, tc.v)
			require.False(t, math.IsNaN(got))
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestMeterDerivedValues(t *testing.T) {
	t.Parallel()

	m := NewMeter(0, testStops)
	require.Equal(t, 0, m.Percent())
	require.False(t, m.ShowJumpToTop())

	m.Update(0.125*80, 100, 20)
	require.Equal(t, 13, m.Percent())
	require.True(t, m.ShowJumpToTop())

	m.Update(0, 20, 20)
	require.Zero(t, m.Progress())
	require.False(t, m.ShowJumpToTop())
}

func TestMeterSetJumpThreshold(t *testing.T) {
	t.Parallel()

	m := NewMeter(0, testStops)
	m.Update(30, 100, 20)
	require.True(t, m.ShowJumpToTop())

	m.SetJumpThreshold(0.5)
	require.False(t, m.ShowJumpToTop())
	m.Update(60, 100, 20)
	require.True(t, m.ShowJumpToTop())

	m.SetJumpThreshold(0)
	m.Update(0.125*80, 100, 20)
	require.True(t, m.ShowJumpToTop(), "non-positive falls back to the default")
}

func TestMeterColorStops(t *testing.T) {
	t.Parallel()

	m := NewMeter(0.1, testStops)
	require.Equal(t, "#ff0000", m.ColorAt(0).Hex())
	require.Equal(t, "#00ff00", m.ColorAt(0.5).Hex())
	require.Equal(t, "#0000ff", m.ColorAt(1).Hex())
	require.Equal(t, "#0000ff", m.ColorAt(3).Hex())

	mid := m.ColorAt(0.25)
	require.InDelta(t, 0.5, mid.R, 0.01)
	require.InDelta(t, 0.5, mid.G, 0.01)

	m.Update(50, 100, 0)
	from, to := m.Colors()
	require.Equal(t, "#ff0000", from)
	require.Equal(t, "#00ff00", to)
}

func TestMeterToleratesInvalidStops(t *testing.T) {
	t.Parallel()

	m := NewMeter(0.1, [3]string{"nope", "", "#fff"})
	require.NotPanics(t, func() { m.ColorAt(0.7) })
}

func TestMeterPublishesProgress(t *testing.T) {
	t.Parallel()

	m := NewMeter(0.1, testStops)
	var seen []float64
	m.Subscribe(func(p float64) { seen = append(seen, p) })

	m.Update(10, 30, 10)
	m.Update(10, 30, 10)
	m.Update(20, 30, 10)
	require.Equal(t, []float64{0.5, 1}, seen)
}

func TestTransform(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.0, Transform(0, [2]float64{0, 1}, [2]float64{0, -100}), 1e-9)
	require.InDelta(t, -50.0, Transform(0.5, [2]float64{0, 1}, [2]float64{0, -100}), 1e-9)
	require.InDelta(t, -100.0, Transform(2, [2]float64{0, 1}, [2]float64{0, -100}), 1e-9)
	require.InDelta(t, 0.5, Transform(0.25, [2]float64{0, 0.5}, [2]float64{1, 0}), 1e-9)
	require.InDelta(t, 0.0, Transform(0.9, [2]float64{0, 0.5}, [2]float64{1, 0}), 1e-9)
	require.Equal(t, 3.0, Transform(1, [2]float64{2, 2}, [2]float64{3, 4}))
}

func TestScrolled(t *testing.T) {
	t.Parallel()

	require.False(t, Scrolled(2, 2))
	require.True(t, Scrolled(3, 2))
}
