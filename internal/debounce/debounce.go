package debounce

import (
	"sync"
	"time"
)

// Debounce returns a wrapper around fn that collapses rapid repeated calls
// into one trailing call. Each invocation cancels any pending run and
// schedules fn wait in the future with the latest argument; only the most
// recent call within a quiet window executes. There is no queuing and no
// execution guarantee under continuous invocation — starvation is accepted,
// this exists to throttle search input.
func Debounce[T any](fn func(T), wait time.Duration) func(T) {
	var mu sync.Mutex
	var timer *time.Timer
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() {
			fn(arg)
		})
	}
}
