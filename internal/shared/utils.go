// Package shared provides utility functions for working with sensitive
// in-memory data.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to remove key material such as the composite ballot key from
// memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
