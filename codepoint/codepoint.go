// Package codepoint defines the Unicode code point type, the validity rules the
// codecs enforce, and conversion between supplementary-plane code points and
// UTF-16 surrogate pairs.
//
// All functions are pure and safe for concurrent use.
package codepoint

import "fmt"

// CodePoint is a Unicode scalar value. The type is wide enough for the full
// 31-bit range of the original UTF-8 definition (RFC 2279); validity is decided
// by IsValid or a Policy, not by the type.
type CodePoint uint32

const (
	// Max is the largest Unicode code point.
	Max CodePoint = 0x10FFFF
	// MaxLegacy is the largest value a 6-byte UTF-8 sequence can carry.
	MaxLegacy CodePoint = 0x7FFFFFFF
	// Replacement is U+FFFD REPLACEMENT CHARACTER.
	Replacement CodePoint = 0xFFFD
	// SupplementaryMin is the first code point outside the Basic Multilingual Plane.
	SupplementaryMin CodePoint = 0x10000
)

// Surrogate ranges.
const (
	HighSurrogateMin = 0xD800
	HighSurrogateMax = 0xDBFF
	LowSurrogateMin  = 0xDC00
	LowSurrogateMax  = 0xDFFF
)

// IsValid reports whether cp is a legal Unicode scalar value: outside the
// surrogate range, not U+FFFE or U+FFFF, and not above Max.
func IsValid(cp CodePoint) bool {
	return cp <= 0xD7FF ||
		(cp >= 0xE000 && cp <= 0xFFFD) ||
		IsSupplementary(cp)
}

// IsSupplementary reports whether cp lies in planes 1-16 and therefore needs a
// surrogate pair in UTF-16.
func IsSupplementary(cp CodePoint) bool {
	return cp >= SupplementaryMin && cp <= Max
}

// IsHighSurrogate reports whether n is in 0xD800..0xDBFF.
func IsHighSurrogate(n uint32) bool {
	return n >= HighSurrogateMin && n <= HighSurrogateMax
}

// IsLowSurrogate reports whether n is in 0xDC00..0xDFFF.
func IsLowSurrogate(n uint32) bool {
	return n >= LowSurrogateMin && n <= LowSurrogateMax
}

// IsSurrogate reports whether n is a high or low surrogate.
func IsSurrogate(n uint32) bool {
	return n >= HighSurrogateMin && n <= LowSurrogateMax
}

// ToSurrogates splits a supplementary-plane code point into its UTF-16 high
// and low surrogates. ok is false, and the pair zero, for any other input.
func ToSurrogates(cp CodePoint) (high, low uint16, ok bool) {
	if !IsSupplementary(cp) {
		return 0, 0, false
	}
	n := uint32(cp - SupplementaryMin)
	return uint16(HighSurrogateMin + n>>10), uint16(LowSurrogateMin + n&0x3FF), true
}

// FromSurrogates joins a high and low surrogate into the code point they
// represent. ok is false unless high and low satisfy their predicates.
func FromSurrogates(high, low uint16) (CodePoint, bool) {
	if !IsHighSurrogate(uint32(high)) || !IsLowSurrogate(uint32(low)) {
		return 0, false
	}
	return SupplementaryMin + CodePoint(high-HighSurrogateMin)<<10 + CodePoint(low-LowSurrogateMin), true
}

// String formats cp in U+XXXX notation.
func (cp CodePoint) String() string {
	return fmt.Sprintf("U+%04X", uint32(cp))
}
