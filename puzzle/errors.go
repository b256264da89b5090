package puzzle

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSurface = errors.New("puzzle: rendering surface is required")
	ErrMissingLoader  = errors.New("puzzle: image loader is required")
	ErrNotReady       = errors.New("puzzle: not ready")
	ErrGestureActive  = errors.New("puzzle: a gesture is already active")
	ErrNoGesture      = errors.New("puzzle: no active gesture")
	ErrNotDraggable   = errors.New("puzzle: node is not draggable")
	ErrBadShareCode   = errors.New("puzzle: malformed share code")
)

// ConfigError reports a grid size that is neither a known preset nor a
// valid {x, y} pair. It is returned together with a usable fallback.
type ConfigError struct {
	Input    string
	Fallback GridSize
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("puzzle: invalid grid size %q, using %dx%d", e.Input, e.Fallback.X, e.Fallback.Y)
}

// LoadError wraps a failure of the image loader.
type LoadError struct {
	Src string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("puzzle: load %s: %v", e.Src, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
