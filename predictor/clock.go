package predictor

import "time"

// Clock supplies the current time. Times returned by a real clock must carry
// a monotonic reading so passing-window deadlines survive wall-clock steps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which includes the monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
