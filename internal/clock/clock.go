package clock

import "time"

// Clock abstracts "now" so lifecycle preconditions are testable without
// real time passing.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to a single instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
