package sealtoken

import (
	"encoding/binary"
	"fmt"
)

// kdfContextFixedSize is the size of the fixed-width prefix of an encoded
// KDFContext: iteration count (4 bytes) + salt length (4 bytes).
const kdfContextFixedSize = 4 + 4

// KDFContext carries the PBKDF2 parameters embedded in a token. Salt may
// alias a caller-owned buffer when produced by DecodeKDFContext.
type KDFContext struct {
	IterationCount uint32
	Salt           []byte
}

// Size returns the exact number of bytes Encode writes.
func (k KDFContext) Size() int {
	return kdfContextFixedSize + len(k.Salt)
}

// Encode writes the KDF context to buf, which must be at least Size() bytes.
func (k KDFContext) Encode(buf []byte) error {
	if len(buf) < k.Size() {
		return fmt.Errorf("sealtoken: buffer too small for KDF context: have %d, need %d", len(buf), k.Size())
	}
	binary.LittleEndian.PutUint32(buf[0:4], k.IterationCount)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(k.Salt)))
	copy(buf[8:], k.Salt)
	return nil
}

// DecodeKDFContext parses a KDF context from the front of buf. The
// returned Salt aliases buf; it is not copied. Fails with a corrupted-token
// error when the declared salt length exceeds the available bytes.
func DecodeKDFContext(buf []byte) (KDFContext, error) {
	if len(buf) < kdfContextFixedSize {
		return KDFContext{}, fmt.Errorf("%w: KDF context shorter than fixed header", ErrCorruptedToken)
	}
	iterations := binary.LittleEndian.Uint32(buf[0:4])
	saltLength := binary.LittleEndian.Uint32(buf[4:8])

	remaining := buf[8:]
	if uint64(saltLength) > uint64(len(remaining)) {
		return KDFContext{}, fmt.Errorf("%w: KDF context declares %d-byte salt but only %d bytes remain",
			ErrCorruptedToken, saltLength, len(remaining))
	}

	return KDFContext{
		IterationCount: iterations,
		Salt:           remaining[:saltLength],
	}, nil
}
