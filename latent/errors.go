package latent

import "github.com/pkg/errors"

// Sentinel errors returned by the samplers. Callers match them with
// errors.Is; constructors add context with errors.Wrapf.
var (
	// ErrInvalidConfiguration is returned when shape, weight or mode
	// parameters are rejected at construction (or when per-call weights are
	// rejected by GetBatch).
	ErrInvalidConfiguration = errors.New("latent: invalid configuration")

	// ErrDimensionMismatch is returned when a point or matrix does not match
	// the configured dimensionality.
	ErrDimensionMismatch = errors.New("latent: dimension mismatch")
)

func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}

func mismatchf(format string, args ...any) error {
	return errors.Wrapf(ErrDimensionMismatch, format, args...)
}
