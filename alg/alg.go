// Package alg bit-manipulates the 32-bit algorithm identifier embedded in a
// passphrase auth token: which KDF produced the key, which symmetric mode
// consumes it, the padding scheme, and the key length.
package alg

// Field layout of the 32-bit algorithm identifier. Bits above the key
// length field are reserved and must be zero.
const (
	kdfMask       = 0x0000000F
	algModeMask   = 0x000000F0
	paddingMask   = 0x00000F00
	keyLengthMask = 0x001FF000

	keyLengthShift = 12
)

// KDF selectors.
const (
	KDFPBKDF2 uint32 = 0x01
	KDFNone   uint32 = 0x02
)

// Symmetric algorithm/mode selectors.
const (
	ModeAES256GCM        uint32 = 0x10
	ModeChaCha20Poly1305 uint32 = 0x20
)

// Padding selectors. None is the only scheme the auth-token format defines.
const (
	PaddingNone uint32 = 0x100
)

// Key lengths, in bits, accepted by the passphrase auth-token format.
const (
	KeyLength128 uint32 = 128
	KeyLength192 uint32 = 192
	KeyLength256 uint32 = 256
)

// usedBits is the union of every recognized field.
const usedBits = kdfMask | algModeMask | paddingMask | keyLengthMask

// New assembles an algorithm identifier from its fields. keyLengthBits must
// be one of 128, 192, or 256.
func New(kdf, mode, padding, keyLengthBits uint32) uint32 {
	return (kdf & kdfMask) | (mode & algModeMask) | (padding & paddingMask) |
		((keyLengthBits << keyLengthShift) & keyLengthMask)
}

// KDFSelector extracts the KDF field.
func KDFSelector(a uint32) uint32 {
	return a & kdfMask
}

// WithKDFSelector returns a with its KDF field replaced by kdf.
func WithKDFSelector(a, kdf uint32) uint32 {
	return (a &^ kdfMask) | (kdf & kdfMask)
}

// ModeSelector extracts the symmetric algorithm/mode field.
func ModeSelector(a uint32) uint32 {
	return a & algModeMask
}

// StripKDF clears the KDF selector and sets it to "no KDF", instructing the
// plain AEAD layer that the caller has already derived the final key and
// must not re-derive it.
func StripKDF(a uint32) uint32 {
	return WithKDFSelector(a, KDFNone)
}

// KeyLengthBits extracts the key-length field as stored (in bits).
func KeyLengthBits(a uint32) uint32 {
	return (a & keyLengthMask) >> keyLengthShift
}

// KeyLengthBytes returns the key length in bytes.
func KeyLengthBytes(a uint32) int {
	return int(KeyLengthBits(a) / 8)
}

// ReservedBitsValid reports whether a sets no bits outside the four
// recognized fields. Old implementations must refuse tokens that set bits
// they don't understand rather than silently ignore them.
func ReservedBitsValid(a uint32) bool {
	return a&^usedBits == 0
}

// ValidKeyLengthBits reports whether bits is one of the three key lengths
// the passphrase auth-token format allows.
func ValidKeyLengthBits(bits uint32) bool {
	switch bits {
	case KeyLength128, KeyLength192, KeyLength256:
		return true
	default:
		return false
	}
}
