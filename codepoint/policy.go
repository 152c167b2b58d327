package codepoint

import "github.com/wippyai/utfcodec/errors"

// Policy selects which values and sequence lengths the codecs accept.
type Policy uint8

const (
	// Strict follows modern Unicode: UTF-8 sequences of at most 4 bytes and
	// only values accepted by IsValid.
	Strict Policy = iota
	// Legacy follows RFC 2279: sequences of up to 6 bytes and any value up to
	// MaxLegacy, except surrogates.
	Legacy
)

// Valid reports whether cp is acceptable under p.
func (p Policy) Valid(cp CodePoint) bool {
	if p == Legacy {
		return cp <= MaxLegacy && !IsSurrogate(uint32(cp))
	}
	return IsValid(cp)
}

// MaxLen returns the longest UTF-8 sequence p accepts.
func (p Policy) MaxLen() int {
	if p == Legacy {
		return 6
	}
	return 4
}

// MaxCodePoint returns the largest value p accepts.
func (p Policy) MaxCodePoint() CodePoint {
	if p == Legacy {
		return MaxLegacy
	}
	return Max
}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Legacy:
		return "legacy"
	}
	return "unknown"
}

// ParsePolicy converts "strict" or "legacy" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "legacy":
		return Legacy, nil
	}
	return Strict, errors.InvalidSetting("policy", s, "strict", "legacy")
}
