package main

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeContainer frames a token and its ciphertext as
// [4-byte LE token length][token][ciphertext] so a single stream carries
// both halves of what Encrypt produces.
func writeContainer(w io.Writer, token, ciphertext []byte) error {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(token)))

	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("writing container length prefix: %w", err)
	}
	if _, err := w.Write(token); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	if _, err := w.Write(ciphertext); err != nil {
		return fmt.Errorf("writing ciphertext: %w", err)
	}
	return nil
}

// readContainer reverses writeContainer.
func readContainer(r io.Reader) (token, ciphertext []byte, err error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, nil, fmt.Errorf("reading container length prefix: %w", err)
	}
	tokenLen := binary.LittleEndian.Uint32(prefix[:])

	token = make([]byte, tokenLen)
	if _, err := io.ReadFull(r, token); err != nil {
		return nil, nil, fmt.Errorf("reading token: %w", err)
	}

	ciphertext, err = io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading ciphertext: %w", err)
	}
	return token, ciphertext, nil
}
