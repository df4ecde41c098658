package providers

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func NewClockProvider() Clock {
	return systemClock{}
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

func NewIDProvider() IDGenerator {
	return uuidGenerator{}
}
