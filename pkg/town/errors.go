package town

import "errors"

var (
	// ErrNoRoads means no road could be routed into the town.
	ErrNoRoads = errors.New("no roads into the town")
	// ErrDegenerate means the patch layout could not carry a wall.
	ErrDegenerate = errors.New("degenerate town layout")
	// ErrGenerationFailed is returned once every attempt has failed.
	ErrGenerationFailed = errors.New("town generation failed")
	// ErrInvalidOptions rejects options that can never produce a town.
	ErrInvalidOptions = errors.New("invalid town options")
)

var errPanicked = errors.New("panic during generation")
