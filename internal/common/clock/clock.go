package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/crocodile/internal/common/clock Clock

// Clock tells the current time. Round expiry is computed against it, so
// tests replace it to age sessions without sleeping.
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock in UTC
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current UTC time
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
