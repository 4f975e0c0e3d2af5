// Command cellseal is a thin demonstration client around the cell package:
// it reads a message from stdin, seals it with a passphrase, and writes a
// self-contained container (token length, token, ciphertext) to stdout.
// CLI tooling itself is not part of the core encryption API — this binary
// only exercises it end to end.
package main

import (
	"fmt"
	"os"
	"strings"
)

const (
	version = "1.0.0"

	// PassphraseEnvVar lets scripted callers skip interactive entry.
	PassphraseEnvVar = "CELLSEAL_PASSPHRASE"
)

// options holds flags shared by the encrypt and decrypt commands.
type options struct {
	context []byte
	base64  bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("no command specified")
	}

	command := os.Args[1]
	opts := options{}

	for _, arg := range os.Args[2:] {
		switch {
		case arg == "--base64" || arg == "-b":
			opts.base64 = true
		case strings.HasPrefix(arg, "--context="):
			opts.context = []byte(strings.TrimPrefix(arg, "--context="))
		case strings.HasPrefix(arg, "-c="):
			opts.context = []byte(strings.TrimPrefix(arg, "-c="))
		default:
			return fmt.Errorf("unknown option: %s", arg)
		}
	}

	switch command {
	case "--encrypt", "-e":
		return encrypt(opts)
	case "--decrypt", "-d":
		return decrypt(opts)
	case "--help", "-h":
		printUsage()
		return nil
	case "--version", "-v":
		fmt.Fprintf(os.Stderr, "cellseal version %s\n", version)
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	usage := `cellseal - passphrase-keyed authenticated encryption

USAGE:
    cellseal <command> [options]

COMMANDS:
    --encrypt, -e    Seal a message from STDIN to STDOUT
    --decrypt, -d    Open a sealed container from STDIN to STDOUT
    --help, -h       Show this help message
    --version, -v    Show version information

OPTIONS:
    --context=STR, -c=STR   Associated data bound into the seal
    --base64, -b            Base64-encode the sealed container

PASSPHRASE:
    Set CELLSEAL_PASSPHRASE, or enter interactively.
`
	fmt.Fprint(os.Stderr, usage)
}
