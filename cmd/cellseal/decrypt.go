package main

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"cellseal/cell"
	"cellseal/internal/wipe"
)

func decrypt(opts options) error {
	passphrase, err := getPassphrase("Enter passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	defer wipe.Bytes(passphrase)

	var in io.Reader = bufio.NewReader(os.Stdin)
	if opts.base64 {
		in = base64.NewDecoder(base64.StdEncoding, in)
	}

	token, ciphertext, err := readContainer(in)
	if err != nil {
		return fmt.Errorf("failed to read sealed container (is it a valid cellseal container?): %w", err)
	}

	messageLen, err := cell.DecryptedSize(token)
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	messageBuf := make([]byte, messageLen)

	n, err := cell.Decrypt(passphrase, opts.context, token, ciphertext, messageBuf)
	var bufErr *cell.BufferTooSmallError
	if errors.As(err, &bufErr) {
		// messageBuf was sized from the same probe Decrypt itself consults,
		// so this only fires if the container was tampered with between
		// the probe above and the call to Decrypt.
		messageBuf = make([]byte, bufErr.RequiredMessageLen)
		n, err = cell.Decrypt(passphrase, opts.context, token, ciphertext, messageBuf)
	}
	if err != nil {
		return fmt.Errorf("decryption failed (wrong passphrase, wrong context, or corrupted data?): %w", err)
	}

	if _, err := os.Stdout.Write(messageBuf[:n]); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
