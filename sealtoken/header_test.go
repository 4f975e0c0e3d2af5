package sealtoken

import (
	"bytes"
	"errors"
	"testing"
)

func sampleHeader() Header {
	return Header{
		Algorithm:     0x123,
		IV:            bytes.Repeat([]byte{0xAA}, 12),
		Tag:           bytes.Repeat([]byte{0xBB}, 16),
		MessageLength: 5,
		KDF: KDFContext{
			IterationCount: 100000,
			Salt:           bytes.Repeat([]byte{0xCC}, 16),
		},
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	buf := make([]byte, h.Size())

	n, err := h.Write(buf)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != h.Size() {
		t.Fatalf("Write returned %d bytes, Size() reported %d", n, h.Size())
	}

	got, err := ReadHeader(buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if got.Algorithm != h.Algorithm {
		t.Errorf("algorithm = %#x, want %#x", got.Algorithm, h.Algorithm)
	}
	if !bytes.Equal(got.IV, h.IV) {
		t.Errorf("iv mismatch")
	}
	if !bytes.Equal(got.Tag, h.Tag) {
		t.Errorf("tag mismatch")
	}
	if got.MessageLength != h.MessageLength {
		t.Errorf("message length = %d, want %d", got.MessageLength, h.MessageLength)
	}
	if got.KDF.IterationCount != h.KDF.IterationCount || !bytes.Equal(got.KDF.Salt, h.KDF.Salt) {
		t.Errorf("kdf context mismatch")
	}
}

func TestHeaderWriteBufferTooSmall(t *testing.T) {
	h := sampleHeader()
	buf := make([]byte, h.Size()-1)
	if _, err := h.Write(buf); err == nil {
		t.Fatal("expected error writing into an undersized buffer")
	}
}

func TestReadHeaderCorrupted(t *testing.T) {
	h := sampleHeader()
	buf := make([]byte, h.Size())
	if _, err := h.Write(buf); err != nil {
		t.Fatal(err)
	}

	t.Run("truncated envelope", func(t *testing.T) {
		_, err := ReadHeader(buf[:envelopeSize-1])
		if !errors.Is(err, ErrCorruptedToken) {
			t.Fatalf("expected ErrCorruptedToken, got %v", err)
		}
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := ReadHeader(buf[:len(buf)-1])
		if !errors.Is(err, ErrCorruptedToken) {
			t.Fatalf("expected ErrCorruptedToken, got %v", err)
		}
	})

	t.Run("declared field lengths overflow available bytes", func(t *testing.T) {
		tampered := make([]byte, len(buf))
		copy(tampered, buf)
		// Inflate the iv-length field (offset 4) far past what remains.
		tampered[4] = 0xFF
		tampered[5] = 0xFF
		_, err := ReadHeader(tampered)
		if !errors.Is(err, ErrCorruptedToken) {
			t.Fatalf("expected ErrCorruptedToken, got %v", err)
		}
	})
}

func TestMessageSizeShallowParse(t *testing.T) {
	h := sampleHeader()
	buf := make([]byte, h.Size())
	if _, err := h.Write(buf); err != nil {
		t.Fatal(err)
	}

	size, err := MessageSize(buf)
	if err != nil {
		t.Fatalf("MessageSize: %v", err)
	}
	if size != h.MessageLength {
		t.Fatalf("MessageSize = %d, want %d", size, h.MessageLength)
	}

	// MessageSize must not require the rest of the token to be well formed.
	tampered := make([]byte, len(buf))
	copy(tampered, buf)
	tampered[4] = 0xFF
	tampered[5] = 0xFF
	if _, err := MessageSize(tampered); err != nil {
		t.Fatalf("MessageSize should not validate field lengths, got error: %v", err)
	}
}

func TestHeaderSizeMatchesWrittenBytes(t *testing.T) {
	h := sampleHeader()
	buf := make([]byte, h.Size()+64) // oversized, Write must still report Size()
	n, err := h.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != h.Size() {
		t.Fatalf("Write wrote %d bytes into an oversized buffer, want exactly %d", n, h.Size())
	}
}
