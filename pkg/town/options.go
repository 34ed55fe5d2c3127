package town

import (
	"fmt"
	"log"
)

// Defaults.
const (
	DefaultPatches     = 15
	DefaultMaxAttempts = 20
	// MinPatches is the smallest city with a patch off the circumference,
	// which the castle wall needs to close against.
	MinPatches = 4
)

// Options control one generation run.
type Options struct {
	Patches     int   `json:"patches"`
	Walls       bool  `json:"walls"`
	Water       bool  `json:"water"`
	Overlay     bool  `json:"overlay"`
	Seed        int64 `json:"seed"`
	MaxAttempts int   `json:"max_attempts"`

	// Logger receives one line per failed attempt. Nil means log.Default().
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns a walled town without water.
func DefaultOptions() Options {
	return Options{
		Patches:     DefaultPatches,
		Walls:       true,
		MaxAttempts: DefaultMaxAttempts,
	}
}

func (o Options) withDefaults() Options {
	if o.Patches == 0 {
		o.Patches = DefaultPatches
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return o
}

func (o Options) check() error {
	if o.Patches < MinPatches {
		return fmt.Errorf("%w: patches = %d, need at least %d", ErrInvalidOptions, o.Patches, MinPatches)
	}
	return nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
