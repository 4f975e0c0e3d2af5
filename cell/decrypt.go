package cell

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"cellseal/alg"
	"cellseal/internal/plainaead"
	"cellseal/internal/wipe"
	"cellseal/sealtoken"
)

// Decrypt opens a token produced by Encrypt, checking ciphertext against
// the embedded authentication tag and context against what Encrypt bound
// as associated data, and writes the recovered plaintext into messageBuf.
//
// Decrypt is a two-phase call. It first shallow-parses token
// to learn the declared plaintext length; if messageBuf is nil or smaller
// than that, it returns a *BufferTooSmallError without parsing any further
// or touching ciphertext — so a second call with an adequately sized
// buffer can still fail structural or authentication checks that a probe
// call never reaches.
//
// Structural problems found before the AEAD runs (framing, algorithm
// field, length mismatch) wrap ErrCorruptedToken. Every AEAD failure wraps
// ErrGenericFailure whatever its cause, so a wrong passphrase or context
// cannot be told apart from an altered IV, tag, salt or ciphertext.
func Decrypt(passphrase, context, token, ciphertext, messageBuf []byte) (messageLen int, err error) {
	if len(passphrase) == 0 {
		return 0, fmt.Errorf("%w: passphrase must not be empty", ErrInvalidParameter)
	}
	if context != nil && len(context) == 0 {
		return 0, fmt.Errorf("%w: context must be nil or non-empty", ErrInvalidParameter)
	}
	if len(token) == 0 {
		return 0, fmt.Errorf("%w: token must not be empty", ErrInvalidParameter)
	}

	declaredLength, err := sealtoken.MessageSize(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedToken, err)
	}
	if len(messageBuf) < int(declaredLength) {
		return 0, &BufferTooSmallError{RequiredMessageLen: int(declaredLength)}
	}

	if len(ciphertext) == 0 {
		return 0, fmt.Errorf("%w: ciphertext must not be empty once a message buffer is supplied", ErrInvalidParameter)
	}

	hdr, err := sealtoken.ReadHeader(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedToken, err)
	}

	if uint32(len(ciphertext)) != hdr.MessageLength {
		return 0, fmt.Errorf("%w: ciphertext length %d disagrees with header's declared length %d",
			ErrCorruptedToken, len(ciphertext), hdr.MessageLength)
	}

	// The KDF selector must name PBKDF2. In particular NOKDF must never
	// appear here: it's reserved for the key-mode (non-passphrase) API and
	// accepting it would mean trusting an externally supplied key as if it
	// were a properly derived one.
	switch alg.KDFSelector(hdr.Algorithm) {
	case alg.KDFPBKDF2:
	default:
		return 0, fmt.Errorf("%w: unsupported KDF selector %#x", ErrCorruptedToken, alg.KDFSelector(hdr.Algorithm))
	}

	keyLengthBits := alg.KeyLengthBits(hdr.Algorithm)
	if !alg.ValidKeyLengthBits(keyLengthBits) {
		return 0, fmt.Errorf("%w: unsupported key length %d bits", ErrCorruptedToken, keyLengthBits)
	}

	if !alg.ReservedBitsValid(hdr.Algorithm) {
		return 0, fmt.Errorf("%w: algorithm identifier %#x sets reserved bits", ErrCorruptedToken, hdr.Algorithm)
	}

	keyLength := alg.KeyLengthBytes(hdr.Algorithm)

	var derivedKey [maxKeyLength]byte
	defer wipe.Bytes(derivedKey[:])

	key := derivedKey[:keyLength]
	derived := pbkdf2.Key(passphrase, hdr.KDF.Salt, int(hdr.KDF.IterationCount), keyLength, sha256.New)
	copy(key, derived)
	wipe.Bytes(derived)

	plaintext, err := plainaead.Open(alg.StripKDF(hdr.Algorithm), key, hdr.IV, context, ciphertext, hdr.Tag)
	if err != nil {
		// Every AEAD failure gets the same generic failure: callers must not
		// be able to tell "wrong passphrase" apart from altered authenticated
		// bytes from the error alone.
		return 0, fmt.Errorf("%w: %v", ErrGenericFailure, err)
	}
	if len(plaintext) != len(ciphertext) {
		return 0, fmt.Errorf("%w: aead returned %d bytes for a %d-byte ciphertext", ErrGenericFailure, len(plaintext), len(ciphertext))
	}

	copy(messageBuf, plaintext)
	return len(plaintext), nil
}

// DecryptedSize shallow-parses token to learn the buffer size a call to
// Decrypt would require for messageBuf, without validating the rest of the
// token. Calling it twice on the same token yields the same answer.
func DecryptedSize(token []byte) (messageLen int, err error) {
	declared, err := sealtoken.MessageSize(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorruptedToken, err)
	}
	return int(declared), nil
}
