package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	var calls atomic.Int32
	d := New(30*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.EqualValues(t, 1, calls.Load())
	require.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	require.True(t, d.Pending())
	require.True(t, d.Cancel())
	require.False(t, d.Cancel())

	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 0, calls.Load())
}

func TestDebouncer_Flush(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	require.False(t, d.Flush())

	d.Trigger()
	require.True(t, d.Flush())
	require.EqualValues(t, 1, calls.Load())
	require.False(t, d.Pending())
}

func TestDebouncer_FiresAgainAfterQuietPeriod(t *testing.T) {
	var calls atomic.Int32
	d := New(10*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 2*time.Millisecond)
}
