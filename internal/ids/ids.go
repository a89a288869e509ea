// Package ids mints identifiers for created resources.
//
// Identifiers are fixed-length lowercase base-36 tokens. The production
// generator draws from a crypto-random source via go-nanoid; tests inject a
// deterministic Generator instead.
package ids

import (
	"fmt"
	"sync"

	gonanoid "github.com/jaevor/go-nanoid"

	"lambda-services-api/internal/models"
)

// Generator mints a new identifier on every call.
type Generator interface {
	NewID() string
}

// Func adapts an ordinary function to the Generator interface.
type Func func() string

// NewID calls f.
func (f Func) NewID() string {
	return f()
}

// NewBase36 returns a generator of length-character base-36 tokens.
func NewBase36(length int) (Generator, error) {
	if length <= 0 {
		length = models.IDLength
	}

	gen, err := gonanoid.CustomASCII(models.IDAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	return Func(gen), nil
}

// Default returns the generator used for created resources.
func Default() Generator {
	gen, err := NewBase36(models.IDLength)
	if err != nil {
		// The alphabet and length are constants; this cannot fail at runtime.
		panic(err)
	}
	return gen
}

// Sequence hands out a fixed list of identifiers in order, then repeats the
// last one. It is safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	ids  []string
	next int
}

// NewSequence creates a Sequence over ids.
func NewSequence(ids ...string) *Sequence {
	return &Sequence{ids: ids}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) == 0 {
		return ""
	}
	id := s.ids[s.next]
	if s.next < len(s.ids)-1 {
		s.next++
	}
	return id
}
