package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"cellseal/cell"
	"cellseal/internal/wipe"
)

func encrypt(opts options) error {
	passphrase, err := getPassphraseWithConfirm("Enter passphrase: ", "Confirm passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	defer wipe.Bytes(passphrase)

	message, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	tokenLen, ciphertextLen := cell.EncryptedSize(len(message))
	tokenBuf := make([]byte, tokenLen)
	ciphertextBuf := make([]byte, ciphertextLen)

	n, m, err := cell.Encrypt(passphrase, message, opts.context, tokenBuf, ciphertextBuf)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}
	token, ciphertext := tokenBuf[:n], ciphertextBuf[:m]

	var out io.Writer = os.Stdout
	var encoder io.WriteCloser
	if opts.base64 {
		encoder = base64.NewEncoder(base64.StdEncoding, os.Stdout)
		out = encoder
	}

	if err := writeContainer(out, token, ciphertext); err != nil {
		return err
	}

	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush base64 output: %w", err)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
