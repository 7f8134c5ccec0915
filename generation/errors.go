package generation

import (
	"errors"

	"ebiten-dungen/config"
)

// Errors returned by the generation pipeline. Callers match them with errors.Is.
var (
	// ErrConfig marks a structurally invalid configuration. It is never retried.
	ErrConfig = config.ErrInvalid
	// ErrRatioExhausted means no room geometry within the aspect ratio bounds was found in budget.
	ErrRatioExhausted = errors.New("generation: room ratio attempts exhausted")
	// ErrCorridorExhausted means a connection could not be carved without collisions in budget.
	ErrCorridorExhausted = errors.New("generation: corridor attempts exhausted")
	// ErrOrientationViolation means an orientation was assigned to a cell that does not satisfy it.
	ErrOrientationViolation = errors.New("generation: orientation violation")
	// ErrSeparationDiverged means a separation pass hit its sweep cap with overlaps remaining.
	ErrSeparationDiverged = errors.New("generation: separation did not converge")
	// ErrSamplingExhausted means radius sampling hit its draw cap before filling its quotas.
	ErrSamplingExhausted = errors.New("generation: radius sampling exhausted")
	// ErrAttemptsExhausted is the terminal failure once every outer attempt has failed.
	ErrAttemptsExhausted = errors.New("generation: map generation attempts exhausted")
)

// IsRecoverable reports whether err should restart the pipeline with fresh randomness
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrRatioExhausted) ||
		errors.Is(err, ErrCorridorExhausted) ||
		errors.Is(err, ErrSeparationDiverged) ||
		errors.Is(err, ErrSamplingExhausted)
}
