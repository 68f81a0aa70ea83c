package gff

import "strings"

// resRefMaxLen is the on-disk limit for resource identifiers: a 1-byte
// length prefix and at most 16 bytes of text.
const resRefMaxLen = 16

// ResRef is a short ASCII resource identifier, at most 16 characters.
// Longer values are truncated when written.
type ResRef string

// NewResRef returns a ResRef trimmed of surrounding whitespace and clipped
// to the 16-character limit.
func NewResRef(s string) ResRef {
	s = strings.TrimSpace(s)
	if len(s) > resRefMaxLen {
		s = s[:resRefMaxLen]
	}
	return ResRef(s)
}

func (r ResRef) String() string { return string(r) }

// Vector3 is three consecutive 32-bit floats.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is four consecutive 32-bit floats.
type Vector4 struct {
	X, Y, Z, W float32
}
