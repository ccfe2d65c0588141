package nn

import "errors"

// Error taxonomy shared by layers and networks.
//
// Call sites wrap these with context (github.com/pkg/errors); match them
// with errors.Is.
var (
	// ErrShapeMismatch reports a matrix whose dimensions do not agree with
	// the declared topology or with the current batch.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidConfiguration reports an unknown activation or task, an
	// empty or inconsistent layer stack, or out-of-range hyperparameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDegenerateMetric reports a metric that is undefined for the given
	// data, e.g. R² against a zero-variance target.
	ErrDegenerateMetric = errors.New("degenerate metric")

	// ErrNonFinite reports a NaN or infinite input, loss or gradient. The
	// mini-batch that produced it is not applied.
	ErrNonFinite = errors.New("non-finite value")
)
