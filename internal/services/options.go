package services

import (
	"math/rand"
	"time"

	"lambda-services-api/internal/ids"
)

// Clock reports the current time
type Clock func() time.Time

// RandomSource draws integers in [0, n)
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.Intn(n)
}

// DefaultRandom returns a RandomSource backed by the process-wide generator,
// safe for concurrent use.
func DefaultRandom() RandomSource {
	return globalRandom{}
}

// ServiceConfig holds configuration and injectable collaborators for services.
// Zero values are replaced with production defaults.
type ServiceConfig struct {
	Region           string
	DirectoryLatency time.Duration
	Clock            Clock
	IDs              ids.Generator
	Random           RandomSource
}

func (c *ServiceConfig) withDefaults() *ServiceConfig {
	out := ServiceConfig{}
	if c != nil {
		out = *c
	}
	if out.Region == "" {
		out.Region = "us-east-1"
	}
	if out.Clock == nil {
		out.Clock = time.Now
	}
	if out.IDs == nil {
		out.IDs = ids.Default()
	}
	if out.Random == nil {
		out.Random = DefaultRandom()
	}
	return &out
}
