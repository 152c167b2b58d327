package utf8

import "github.com/wippyai/utfcodec/codepoint"

// UTFMax is the longest sequence any policy produces.
const UTFMax = 6

// Codec decodes and encodes single characters under a validation policy.
type Codec struct {
	Policy codepoint.Policy
}

var (
	// Strict is the codec used by the package level functions.
	Strict = Codec{Policy: codepoint.Strict}
	// Legacy accepts the five- and six-byte forms of RFC 2279.
	Legacy = Codec{Policy: codepoint.Legacy}
)

// New returns a Codec for the given policy.
func New(policy codepoint.Policy) Codec {
	return Codec{Policy: policy}
}

// Len returns the minimal number of bytes needed to encode cp, or 0 when cp
// exceeds codepoint.MaxLegacy. Len does not consult any policy.
func Len(cp codepoint.CodePoint) int {
	switch {
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	case cp < 0x200000:
		return 4
	case cp < 0x4000000:
		return 5
	case cp <= codepoint.MaxLegacy:
		return 6
	}
	return 0
}

// Decode decodes one character at p[pos] using the Strict codec.
func Decode(p []byte, pos int) (codepoint.CodePoint, int, error) {
	return Strict.Decode(p, pos)
}

// Encode encodes cp using the Strict codec.
func Encode(cp codepoint.CodePoint) ([]byte, error) {
	return Strict.Encode(cp)
}

// Valid reports whether p consists entirely of characters the Strict codec accepts.
func Valid(p []byte) bool {
	return Strict.Valid(p)
}

// Valid reports whether p consists entirely of characters c accepts.
func (c Codec) Valid(p []byte) bool {
	for pos := 0; pos < len(p); {
		var err error
		if _, pos, err = c.Decode(p, pos); err != nil {
			return false
		}
	}
	return true
}

// Count returns the number of characters in p, stopping at the first error.
func (c Codec) Count(p []byte) (int, error) {
	n := 0
	for pos := 0; pos < len(p); n++ {
		var err error
		if _, pos, err = c.Decode(p, pos); err != nil {
			return n, err
		}
	}
	return n, nil
}
