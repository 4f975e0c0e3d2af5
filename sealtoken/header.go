package sealtoken

import (
	"encoding/binary"
	"fmt"
)

// envelopeSize is the size of the fixed-width prefix of a passphrase
// auth-token: algorithm id, iv length, tag length, message length, and kdf
// context length, each a little-endian uint32.
const envelopeSize = 4 + 4 + 4 + 4 + 4

// Header is the passphrase auth-token envelope. IV, Tag, and KDF.Salt alias
// the buffer ReadHeader parsed from; they are borrowed, not copied, and
// share its lifetime.
type Header struct {
	Algorithm     uint32
	IV            []byte
	Tag           []byte
	MessageLength uint32
	KDF           KDFContext
}

// Size returns the exact serialized size of h. The caller must treat any
// drift between Size and the bytes Write actually produces as a fatal
// internal bug, never as a recoverable error.
func (h Header) Size() int {
	return envelopeSize + len(h.IV) + len(h.Tag) + h.KDF.Size()
}

// Write serializes h into buf in two passes: first the fixed envelope
// (which references the KDF context's size before the KDF context itself
// exists), then IV, tag, and KDF context in their declared order. Returns
// the number of bytes written, equal to Size().
func (h Header) Write(buf []byte) (int, error) {
	size := h.Size()
	if len(buf) < size {
		return 0, fmt.Errorf("sealtoken: buffer too small for header: have %d, need %d", len(buf), size)
	}

	binary.LittleEndian.PutUint32(buf[0:4], h.Algorithm)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(h.IV)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(h.Tag)))
	binary.LittleEndian.PutUint32(buf[12:16], h.MessageLength)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(h.KDF.Size()))

	offset := envelopeSize
	offset += copy(buf[offset:], h.IV)
	offset += copy(buf[offset:], h.Tag)

	if err := h.KDF.Encode(buf[offset:]); err != nil {
		return 0, fmt.Errorf("sealtoken: writing KDF context: %w", err)
	}
	offset += h.KDF.Size()

	if offset != size {
		// Size() promised this many bytes; a mismatch here means the codec
		// itself is broken, not that the caller did anything wrong.
		panic(fmt.Sprintf("sealtoken: Header.Size() = %d but Write produced %d bytes", size, offset))
	}
	return offset, nil
}

// ReadHeader parses a full passphrase auth-token from buf. IV, Tag, and
// KDF.Salt alias buf.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < envelopeSize {
		return Header{}, fmt.Errorf("%w: token shorter than the fixed envelope", ErrCorruptedToken)
	}

	algorithm := binary.LittleEndian.Uint32(buf[0:4])
	ivLength := binary.LittleEndian.Uint32(buf[4:8])
	tagLength := binary.LittleEndian.Uint32(buf[8:12])
	messageLength := binary.LittleEndian.Uint32(buf[12:16])
	kdfLength := binary.LittleEndian.Uint32(buf[16:20])

	rest := buf[envelopeSize:]

	if err := checkFits(rest, ivLength, tagLength, kdfLength); err != nil {
		return Header{}, err
	}

	iv := rest[:ivLength]
	rest = rest[ivLength:]
	tag := rest[:tagLength]
	rest = rest[tagLength:]
	kdfBuf := rest[:kdfLength]

	kdf, err := DecodeKDFContext(kdfBuf)
	if err != nil {
		return Header{}, err
	}

	return Header{
		Algorithm:     algorithm,
		IV:            iv,
		Tag:           tag,
		MessageLength: messageLength,
		KDF:           kdf,
	}, nil
}

func checkFits(rest []byte, ivLength, tagLength, kdfLength uint32) error {
	total := uint64(ivLength) + uint64(tagLength) + uint64(kdfLength)
	if total > uint64(len(rest)) {
		return fmt.Errorf("%w: declared field lengths (%d) exceed available bytes (%d)",
			ErrCorruptedToken, total, len(rest))
	}
	return nil
}

// MessageSize is a shallow parse returning only the declared message
// length, without validating the rest of the token. It is used to answer
// decrypt's sizing probe without the cost (or oracle risk) of a full parse.
func MessageSize(buf []byte) (uint32, error) {
	if len(buf) < envelopeSize {
		return 0, fmt.Errorf("%w: token shorter than the fixed envelope", ErrCorruptedToken)
	}
	return binary.LittleEndian.Uint32(buf[12:16]), nil
}
