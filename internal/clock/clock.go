package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so bill status logic can be tested deterministically.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
