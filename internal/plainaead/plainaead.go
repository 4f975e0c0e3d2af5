// Package plainaead wraps raw AEAD primitives that never derive their own
// key and take the IV as an explicit parameter rather than generating or
// hiding one, so their output can be sliced into a token's separate IV and
// tag fields. cell is the only caller.
package plainaead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"cellseal/alg"
)

// IVLength and TagLength are fixed for both registered modes.
const (
	IVLength  = 12
	TagLength = 16
)

func newAEAD(algorithm uint32, key []byte) (cipher.AEAD, error) {
	switch alg.ModeSelector(algorithm) {
	case alg.ModeAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("plainaead: building AES cipher: %w", err)
		}
		gcm, err := cipher.NewGCMWithNonceSize(block, IVLength)
		if err != nil {
			return nil, fmt.Errorf("plainaead: building GCM: %w", err)
		}
		return gcm, nil
	case alg.ModeChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("plainaead: building ChaCha20-Poly1305: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("plainaead: unrecognized algorithm/mode selector %#x", alg.ModeSelector(algorithm))
	}
}

// Seal encrypts plaintext under key and iv, binding associatedData. It
// returns ciphertext of exactly len(plaintext) bytes and a TagLength-byte
// authentication tag, kept separate so the caller can place each in its own
// token field.
func Seal(algorithm uint32, key, iv, associatedData, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := newAEAD(algorithm, key)
	if err != nil {
		return nil, nil, err
	}
	if len(iv) != aead.NonceSize() {
		return nil, nil, fmt.Errorf("plainaead: iv length %d, want %d", len(iv), aead.NonceSize())
	}

	sealed := aead.Seal(nil, iv, plaintext, associatedData)
	if len(sealed) != len(plaintext)+aead.Overhead() {
		return nil, nil, fmt.Errorf("plainaead: unexpected sealed length %d", len(sealed))
	}

	ciphertext = sealed[:len(plaintext)]
	tag = sealed[len(plaintext):]
	return ciphertext, tag, nil
}

// Open verifies tag and decrypts ciphertext under key and iv, checking
// associatedData. It does not distinguish an authentication failure from
// any other decrypt failure; both return a non-nil error.
func Open(algorithm uint32, key, iv, associatedData, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newAEAD(algorithm, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("plainaead: iv length %d, want %d", len(iv), aead.NonceSize())
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, iv, sealed, associatedData)
	if err != nil {
		return nil, fmt.Errorf("plainaead: authentication failed: %w", err)
	}
	return plaintext, nil
}
