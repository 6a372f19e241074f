// Package common contains byte helpers shared by the client packages.
package common

// WipeByteArray overwrites b with zeros so that passwords do not linger in
// memory longer than needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EqualBytes reports whether a and b hold the same bytes.
func EqualBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
