package cell

import "errors"

// Sentinel errors. Callers should use errors.Is against these; the
// underlying error returned always wraps one of them with %w, except
// BufferTooSmallError which is returned directly since it's a recoverable
// signal, not a failure.
var (
	// ErrInvalidParameter is a precondition violation at the API edge: a
	// nil/empty required input, or a context whose nullness/length is
	// inconsistent. Never returned after the first primitive call.
	ErrInvalidParameter = errors.New("cell: invalid parameter")

	// ErrCorruptedToken covers structural parse failures, nonzero reserved
	// bits, an unsupported KDF selector, an unsupported key length, or a
	// ciphertext length that disagrees with the header.
	ErrCorruptedToken = errors.New("cell: corrupted token")

	// ErrGenericFailure covers a downstream primitive failure (CSPRNG, KDF,
	// AEAD) or an authentication failure. Decrypt reports every
	// authentication failure with this error, whatever its cause, so a wrong
	// passphrase looks the same as an altered IV, tag, salt or ciphertext.
	ErrGenericFailure = errors.New("cell: generic failure")
)

// BufferTooSmallError is returned when an output buffer is missing or
// smaller than required. It carries the required sizes so the caller can
// reallocate and retry; it is the probe-phase half of the two-phase
// buffer-sizing contract.
type BufferTooSmallError struct {
	RequiredTokenLen      int
	RequiredCiphertextLen int
	RequiredMessageLen    int
}

func (e *BufferTooSmallError) Error() string {
	return "cell: output buffer too small"
}
