package clock

import "time"

// Clock is the injected time source for the order flow. Now feeds the
// cutoff-time comparison (local wall clock), UtcNow feeds creation timestamps.
type Clock interface {
	Now() time.Time
	UtcNow() time.Time
}

type systemClock struct{}

func System() Clock { return systemClock{} }

func (systemClock) Now() time.Time    { return time.Now() }
func (systemClock) UtcNow() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time    { return f.T }
func (f Fixed) UtcNow() time.Time { return f.T.UTC() }

// TimeOfDay returns the duration elapsed since midnight of t's day.
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
