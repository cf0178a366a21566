package quiz

import "time"

// Clock is the source of "now" for elapsed-time checks.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now, which carries a monotonic reading.
var SystemClock Clock = ClockFunc(time.Now)
