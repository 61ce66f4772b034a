package generator

import "errors"

// Errors shared by every backend. Callers match them with errors.Is; the
// underlying cause stays in the chain.
var (
	ErrGenerationFailed = errors.New("story generation failed")
	ErrNotInitialized   = errors.New("generator not initialized")
	ErrInvalidConfig    = errors.New("invalid generator configuration")
)
