package session

import (
	"sync"
	"time"
)

// Activity is the shared last-activity cell. The tick handler and the
// independently-registered input listeners both hold the same *Activity, so
// the monitor always observes live data. Capturing a timestamp value at
// monitor start instead of this cell reproduces the stale-closure bug the
// monitor exists to prevent.
type Activity struct {
	mu     sync.Mutex
	last   time.Time
	warned bool
}

func NewActivity() *Activity {
	return &Activity{last: time.Now()}
}

// Touch resets the idle clock and re-arms the expiry warning. Every
// qualifying input event (pointer, keyboard, touch, scroll — here, any
// authenticated request) routes through Touch.
func (a *Activity) Touch() {
	a.mu.Lock()
	a.last = time.Now()
	a.warned = false
	a.mu.Unlock()
}

// Snapshot returns the last-activity time and whether the warning has fired.
func (a *Activity) Snapshot() (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last, a.warned
}

func (a *Activity) markWarned() {
	a.mu.Lock()
	a.warned = true
	a.mu.Unlock()
}
