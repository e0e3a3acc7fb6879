package clock

import "time"

// Clock abstrai o relógio para os testes controlarem o tempo.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type FixedClock struct {
	Instant time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{Instant: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	return c.Instant
}
