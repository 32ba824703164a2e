package scroll

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnimatorReachesTarget(t *testing.T) {
	t.Parallel()

	a := NewAnimator(30)
	a.Start(120, 0)
	require.True(t, a.Active())

	last := 120
	done := false
	for i := 0; i < 300 && !done; i++ {
		var offset int
		offset, done = a.Step()
		require.LessOrEqual(t, offset, last+1, "critically damped spring does not bounce back")
		last = offset
	}

	require.True(t, done)
	require.Equal(t, 0, last)
	require.False(t, a.Active())
}

func TestAnimatorNoopWhenAlreadyAtTarget(t *testing.T) {
	t.Parallel()

	a := NewAnimator(0)
	a.Start(0, 0)
	offset, done := a.Step()
	require.True(t, done)
	require.Zero(t, offset)
}

func TestAnimatorStop(t *testing.T) {
	t.Parallel()

	a := NewAnimator(60)
	a.Start(40, 0)
	a.Step()
	a.Stop()
	require.False(t, a.Active())
}

func TestAnimatorFinishesOnTargetRow(t *testing.T) {
	t.Parallel()

	a := NewAnimator(30)
	a.Start(64, 0)
	for i := 0; i < 300; i++ {
		offset, done := a.Step()
		if offset == 0 {
			require.True(t, done, "the first frame showing the target ends the animation")
			require.False(t, a.Active())
			return
		}
		require.False(t, done)
	}
	t.Fatal("animation never reached the target row")
}
