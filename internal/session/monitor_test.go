package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorWarnsOnceBeforeExpiry(t *testing.T) {
	activity := NewActivity()
	var warns, logouts int
	m := NewMonitor(activity, DefaultIdleTimeout, WarningOffset,
		func() { warns++ },
		func() { logouts++ },
	)

	start, _ := activity.Snapshot()

	m.Check(start.Add(100 * time.Second))
	assert.Zero(t, warns, "no warning while comfortably active")

	m.Check(start.Add(290 * time.Second))
	assert.Equal(t, 1, warns, "warning fires ten seconds before expiry")
	assert.Zero(t, logouts)

	// Further ticks inside the warning window stay silent.
	m.Check(start.Add(292 * time.Second))
	m.Check(start.Add(295 * time.Second))
	assert.Equal(t, 1, warns)
}

func TestMonitorLogsOutExactlyOnce(t *testing.T) {
	activity := NewActivity()
	var logouts int
	m := NewMonitor(activity, DefaultIdleTimeout, WarningOffset, nil, func() { logouts++ })

	start, _ := activity.Snapshot()

	m.Check(start.Add(300 * time.Second))
	assert.Equal(t, 1, logouts)

	// The tick loop keeps running until Stop; the logout must not repeat.
	m.Check(start.Add(301 * time.Second))
	m.Check(start.Add(400 * time.Second))
	assert.Equal(t, 1, logouts)
}

func TestTouchResetsIdleClockAndWarning(t *testing.T) {
	activity := NewActivity()
	var warns, logouts int
	m := NewMonitor(activity, DefaultIdleTimeout, WarningOffset,
		func() { warns++ },
		func() { logouts++ },
	)

	start, _ := activity.Snapshot()
	m.Check(start.Add(295 * time.Second))
	assert.Equal(t, 1, warns)

	activity.Touch()
	touched, warned := activity.Snapshot()
	assert.False(t, warned, "activity re-arms the warning")

	// Relative to the touch the session is fresh again.
	m.Check(touched.Add(100 * time.Second))
	assert.Equal(t, 1, warns)
	assert.Zero(t, logouts)

	// And the full cycle repeats from the new baseline.
	m.Check(touched.Add(291 * time.Second))
	assert.Equal(t, 2, warns)
	m.Check(touched.Add(300 * time.Second))
	assert.Equal(t, 1, logouts)
}

func TestMonitorObservesLiveActivityNotAStartSnapshot(t *testing.T) {
	activity := NewActivity()
	var logouts int
	m := NewMonitor(activity, DefaultIdleTimeout, WarningOffset, nil, func() { logouts++ })

	// Age the cell past the limit, then touch it. A monitor that captured the
	// original timestamp instead of reading the shared cell would log the
	// session out on the next check.
	activity.mu.Lock()
	activity.last = time.Now().Add(-600 * time.Second)
	activity.mu.Unlock()
	activity.Touch()

	m.Check(time.Now().Add(100 * time.Second))
	assert.Zero(t, logouts)
}

func TestMonitorDefaultsGuardBadConfig(t *testing.T) {
	activity := NewActivity()
	m := NewMonitor(activity, 0, 0, nil, func() {})
	assert.Equal(t, DefaultIdleTimeout, m.timeout)
	assert.Equal(t, WarningOffset, m.warnOffset)

	// A warning offset wider than the timeout would warn immediately forever.
	m = NewMonitor(activity, 30*time.Second, time.Minute, nil, func() {})
	assert.Equal(t, WarningOffset, m.warnOffset)
}

func TestMonitorStopIsIdempotent(t *testing.T) {
	m := NewMonitor(NewActivity(), DefaultIdleTimeout, WarningOffset, nil, func() {})
	m.Start(TickInterval)
	m.Stop()
	m.Stop()
}
