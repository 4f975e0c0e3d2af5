package sealtoken

import "errors"

// ErrCorruptedToken is wrapped by every parse failure in this package: a
// token or KDF context shorter than its fixed prefix, or a length field
// pointing outside the buffer.
var ErrCorruptedToken = errors.New("sealtoken: corrupted token")
