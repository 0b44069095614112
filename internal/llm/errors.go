package llm

import "errors"

var (
	// ErrUnavailable indicates the model endpoint could not be reached or
	// returned a non-success status. An unreachable reviewer must never
	// itself block a commit, so callers treat this as skippable.
	ErrUnavailable = errors.New("model endpoint unavailable")

	// ErrTimeout indicates the shared deadline fired before the exchange
	// completed. Also skippable.
	ErrTimeout = errors.New("model request timed out")

	// ErrInvalidReply indicates the model's reply could not be normalized
	// into a decision. A judgment that cannot be trusted is fatal.
	ErrInvalidReply = errors.New("invalid model reply")
)

// IsInfrastructure reports whether err is a failure of the model endpoint
// rather than of its output. Infrastructure failures degrade to
// skip-and-allow; everything else is a validation failure.
func IsInfrastructure(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout)
}
