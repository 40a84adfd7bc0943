// Package shared provides small helpers used by the CLI.
package shared

// WipeByteArray zeroes b in place, e.g. a password once it has been sent.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
