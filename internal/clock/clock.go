package clock

import "time"

var nowFunc = time.Now

// Now returns the current time from the configured clock source.
func Now() time.Time {
	return nowFunc()
}

// SetNowForTest overrides the clock source and returns a restore function.
// Date operations resolve "today" through this clock so tests can pin it.
func SetNowForTest(fn func() time.Time) func() {
	previous := nowFunc
	nowFunc = fn
	return func() {
		nowFunc = previous
	}
}
