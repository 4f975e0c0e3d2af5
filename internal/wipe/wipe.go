// Package wipe clears sensitive byte buffers so they don't linger in memory
// past the call frame that owns them.
package wipe

import "runtime"

// Bytes overwrites b with zeros. The runtime.KeepAlive call stops the
// compiler from proving the store dead and eliding it.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// All wipes every slice in bs, in order.
func All(bs ...[]byte) {
	for _, b := range bs {
		Bytes(b)
	}
}
