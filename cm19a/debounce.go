package cm19a

import "time"

// DefaultDebounceWindow is how long a repeated event is suppressed. Remote
// controls retransmit while a button is held down.
const DefaultDebounceWindow = 600 * time.Millisecond

// Debouncer drops an event that repeats the previous one within Window.
// A different event, or the same one after the window has passed, is
// accepted immediately. A Debouncer is not safe for concurrent use; it is
// owned by the receive loop.
type Debouncer struct {
	Window time.Duration

	now      func() time.Time
	last     string
	lastTime time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window, now: time.Now}
}

// Accept reports whether the event should be delivered and, if so,
// records it as the most recent event
func (d *Debouncer) Accept(event string) bool {
	now := d.now()
	if event == d.last && now.Sub(d.lastTime) < d.Window {
		return false
	}

	d.last = event
	d.lastTime = now
	return true
}
