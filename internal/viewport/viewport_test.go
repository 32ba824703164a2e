package viewport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width int
		want  Mode
	}{
		{width: 0, want: Mobile},
		{width: 95, want: Mobile},
		{width: 96, want: Desktop},
		{width: 200, want: Desktop},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.width, DefaultThreshold), "width %d", tc.width)
	}
}

func TestClassifierPublishesOnModeChangeOnly(t *testing.T) {
	t.Parallel()

	c := NewClassifier(120, 0)
	require.Equal(t, DefaultThreshold, c.Threshold())
	require.Equal(t, Desktop, c.Mode())

	var changes []Mode
	c.Subscribe(func(m Mode) { changes = append(changes, m) })

	c.Resize(130)
	c.Resize(80)
	c.Resize(70)
	c.Resize(100)

	require.Equal(t, []Mode{Mobile, Desktop}, changes)
	require.Equal(t, 100, c.Width())
}

func TestScaleForMobileReducesMotion(t *testing.T) {
	t.Parallel()

	desktop := ScaleFor(Desktop)
	mobile := ScaleFor(Mobile)

	require.Equal(t, 1.0, desktop.Velocity)
	require.Less(t, mobile.Count, desktop.Count)
	require.Less(t, mobile.Velocity, desktop.Velocity)
	require.Less(t, mobile.Amplitude, desktop.Amplitude)
	require.Less(t, mobile.Frequency, desktop.Frequency)
	require.Less(t, mobile.Attraction, desktop.Attraction)
	require.Less(t, mobile.ParallaxTop, desktop.ParallaxTop)
	require.Equal(t, "mobile", Mobile.String())
}

func TestSetThresholdReclassifiesCurrentWidth(t *testing.T) {
	t.Parallel()

	c := NewClassifier(120, 0)
	var changes []Mode
	c.Subscribe(func(m Mode) { changes = append(changes, m) })

	require.Equal(t, Mobile, c.SetThreshold(130))
	require.Equal(t, 130, c.Threshold())
	require.Equal(t, Mobile, c.SetThreshold(125))
	require.Equal(t, Desktop, c.SetThreshold(-1))
	require.Equal(t, DefaultThreshold, c.Threshold())
	require.Equal(t, []Mode{Mobile, Desktop}, changes)
}
