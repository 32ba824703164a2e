package reactive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuePublishesOnlyChanges(t *testing.T) {
	t.Parallel()

	v := NewValue("light")
	var seen []string
	unsubscribe := v.Subscribe(func(s string) { seen = append(seen, s) })
	defer unsubscribe()

	require.False(t, v.Set("light"))
	require.True(t, v.Set("dark"))
	require.True(t, v.Set("light"))

	require.Equal(t, []string{"dark", "light"}, seen)
	require.Equal(t, "light", v.Get())
}

func TestValueUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	v := NewValue(0)
	calls := 0
	unsubscribe := v.Subscribe(func(int) { calls++ })
	require.Equal(t, 1, v.Subscribers())

	unsubscribe()
	unsubscribe()
	v.Set(1)

	require.Zero(t, calls)
	require.Zero(t, v.Subscribers())
}

func TestValueNotifiesInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	v := NewValue(0)
	var order []string
	v.Subscribe(func(int) { order = append(order, "first") })
	cancel := v.Subscribe(func(int) { order = append(order, "second") })
	v.Subscribe(func(int) { order = append(order, "third") })
	cancel()

	v.Set(7)
	require.Equal(t, []string{"first", "third"}, order)
}

func TestSubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	t.Parallel()

	v := NewValue(0)
	calls := 0
	var cancel func()
	cancel = v.Subscribe(func(int) {
		calls++
		cancel()
	})

	v.Set(1)
	v.Set(2)
	require.Equal(t, 1, calls)
}

func TestZeroValueSubscribe(t *testing.T) {
	t.Parallel()

	var v Value[bool]
	got := false
	v.Subscribe(func(b bool) { got = b })
	v.Set(true)
	require.True(t, got)
}
