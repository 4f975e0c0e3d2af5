package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/term"

	"cellseal/internal/wipe"
)

func getPassphrase(prompt string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}
	return readPassword(prompt)
}

func getPassphraseWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	passphrase, err := readPassword(prompt)
	if err != nil {
		return nil, err
	}

	confirm, err := readPassword(confirmPrompt)
	if err != nil {
		wipe.Bytes(passphrase)
		return nil, err
	}

	if !bytes.Equal(passphrase, confirm) {
		wipe.Bytes(passphrase)
		wipe.Bytes(confirm)
		return nil, fmt.Errorf("passphrases do not match")
	}

	wipe.Bytes(confirm)
	return passphrase, nil
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	var passphrase []byte
	var err error

	if term.IsTerminal(int(syscall.Stdin)) {
		passphrase, err = term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
	} else {
		tty, ttyErr := os.Open("/dev/tty")
		if ttyErr != nil {
			if runtime.GOOS == "windows" {
				return nil, fmt.Errorf("passphrase must be set via %s when STDIN is piped", PassphraseEnvVar)
			}
			return nil, fmt.Errorf("cannot read passphrase: STDIN is piped and /dev/tty is unavailable; set %s", PassphraseEnvVar)
		}
		defer tty.Close()

		passphrase, err = term.ReadPassword(int(tty.Fd()))
		fmt.Fprintln(os.Stderr)
	}

	if err != nil {
		return nil, err
	}
	return passphrase, nil
}
