package clock

import "time"

// Clock abstracts the ambient time source so time-window checks stay
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

// Now implements Clock.
func (f Fixed) Now() time.Time {
	return f.Instant
}

// At returns a Fixed clock pinned to the given instant.
func At(instant time.Time) Fixed {
	return Fixed{Instant: instant}
}
