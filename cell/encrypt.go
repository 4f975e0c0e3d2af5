package cell

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math"

	"golang.org/x/crypto/pbkdf2"

	"cellseal/alg"
	"cellseal/internal/plainaead"
	"cellseal/internal/wipe"
	"cellseal/sealtoken"
)

// Encrypt seals message under a key derived from passphrase, binding
// context as associated data, and writes the resulting token and
// ciphertext into tokenBuf and ciphertextBuf.
//
// Encrypt is a two-phase call: if tokenBuf or ciphertextBuf
// is nil or smaller than required, nothing is encrypted, no randomness is
// consumed, and a *BufferTooSmallError carrying the required sizes is
// returned. Call Encrypt again with buffers of at least those sizes to
// perform the operation.
func Encrypt(passphrase, message, context, tokenBuf, ciphertextBuf []byte) (tokenLen, ciphertextLen int, err error) {
	if len(passphrase) == 0 {
		return 0, 0, fmt.Errorf("%w: passphrase must not be empty", ErrInvalidParameter)
	}
	if len(message) == 0 {
		return 0, 0, fmt.Errorf("%w: message must not be empty", ErrInvalidParameter)
	}
	if uint64(len(message)) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: message length %d exceeds the 32-bit length field", ErrInvalidParameter, len(message))
	}
	if context != nil && len(context) == 0 {
		return 0, 0, fmt.Errorf("%w: context must be nil or non-empty", ErrInvalidParameter)
	}

	requiredTokenLen := defaultHeaderSize()
	requiredCiphertextLen := len(message)
	if len(tokenBuf) < requiredTokenLen || len(ciphertextBuf) < requiredCiphertextLen {
		return 0, 0, &BufferTooSmallError{
			RequiredTokenLen:      requiredTokenLen,
			RequiredCiphertextLen: requiredCiphertextLen,
		}
	}

	algorithm := defaultAlgorithm
	keyLength := alg.KeyLengthBytes(algorithm)

	var salt [saltLength]byte
	var iv [plainaead.IVLength]byte
	var derivedKey [maxKeyLength]byte
	var tag [plainaead.TagLength]byte

	defer wipe.All(salt[:], iv[:], derivedKey[:], tag[:])

	if _, err := rand.Read(salt[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: generating salt: %v", ErrGenericFailure, err)
	}

	key := derivedKey[:keyLength]
	derived := pbkdf2.Key(passphrase, salt[:], pbkdf2Iterations, keyLength, sha256.New)
	copy(key, derived)
	wipe.Bytes(derived)

	if _, err := rand.Read(iv[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: generating iv: %v", ErrGenericFailure, err)
	}

	// We derived the key ourselves; tell the AEAD layer not to do it again.
	ciphertext, rawTag, err := plainaead.Seal(alg.StripKDF(algorithm), key, iv[:], context, message)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrGenericFailure, err)
	}
	if len(ciphertext) != len(message) {
		return 0, 0, fmt.Errorf("%w: aead produced %d bytes for a %d-byte message", ErrGenericFailure, len(ciphertext), len(message))
	}
	copy(tag[:], rawTag)
	wipe.Bytes(rawTag)

	hdr := sealtoken.Header{
		Algorithm:     algorithm,
		IV:            iv[:],
		Tag:           tag[:],
		MessageLength: uint32(len(message)),
		KDF: sealtoken.KDFContext{
			IterationCount: pbkdf2Iterations,
			Salt:           salt[:],
		},
	}

	if len(tokenBuf) < hdr.Size() {
		return 0, 0, &BufferTooSmallError{
			RequiredTokenLen:      hdr.Size(),
			RequiredCiphertextLen: len(message),
		}
	}

	n, err := hdr.Write(tokenBuf)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: writing token: %v", ErrGenericFailure, err)
	}

	copy(ciphertextBuf, ciphertext)

	return n, len(ciphertext), nil
}

// EncryptedSize probes the buffer sizes a call to Encrypt with a message of
// messageLength bytes would require, without deriving any key or consuming
// randomness. Calling it twice with the same messageLength yields the same
// answer.
func EncryptedSize(messageLength int) (tokenLen, ciphertextLen int) {
	return defaultHeaderSize(), messageLength
}
