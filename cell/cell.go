// Package cell implements passphrase-keyed authenticated symmetric
// encryption: Encrypt and Decrypt derive a key from a passphrase with
// PBKDF2-HMAC-SHA256 exactly once per call, hand it to a plain AEAD that is
// told never to re-derive it, and wrap the result in a self-describing
// token that carries everything needed to decrypt except the passphrase.
package cell

import (
	"cellseal/alg"
	"cellseal/internal/plainaead"
	"cellseal/sealtoken"
)

// PBKDF2 and salt parameters for new tokens. Past versions of this package
// may have used different values; Decrypt does not care, since it reads
// the iteration count and salt length out of each token's KDF context
// rather than assuming these constants.
const (
	pbkdf2Iterations = 100000
	saltLength       = 16
)

// maxKeyLength is the largest derived-key size the passphrase auth-token
// format allows (256 bits). Decrypt sizes its derived-key buffer for this
// case up front and uses only a prefix when a shorter key is selected,
// rather than allocating a size that depends on untrusted input.
const maxKeyLength = 32

// defaultAlgorithm is the algorithm identifier Encrypt uses today: PBKDF2,
// AES-256-GCM, no padding. Future versions of this package may change it,
// but Decrypt must keep accepting tokens produced under every prior
// default — Decrypt enforces that by validating the algorithm field
// generically rather than checking it against this constant.
var defaultAlgorithm = alg.New(alg.KDFPBKDF2, alg.ModeAES256GCM, alg.PaddingNone, 256)

// defaultHeaderSize returns the exact size of a token Encrypt produces
// today: the fixed envelope, an IV and tag sized for defaultAlgorithm, and
// a KDF context sized for the constants above. Encrypt's buffer-size probe
// uses this as a conservative upper bound before it has derived anything.
func defaultHeaderSize() int {
	h := sealtoken.Header{
		Algorithm:     defaultAlgorithm,
		IV:            make([]byte, plainaead.IVLength),
		Tag:           make([]byte, plainaead.TagLength),
		MessageLength: 0,
		KDF: sealtoken.KDFContext{
			IterationCount: pbkdf2Iterations,
			Salt:           make([]byte, saltLength),
		},
	}
	return h.Size()
}
