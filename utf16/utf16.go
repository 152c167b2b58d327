// Package utf16 converts between code points and UTF-16 code units, and
// between code units and their byte serialization in either byte order.
//
// The functions here enforce representability only: every value up to
// codepoint.Max outside the surrogate range. Whether a value such as U+FFFE is
// acceptable is decided by the caller's codepoint.Policy.
package utf16

import (
	"encoding/binary"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// Len returns the number of code units needed for cp, or 0 if cp cannot be
// represented.
func Len(cp codepoint.CodePoint) int {
	switch {
	case codepoint.IsSurrogate(uint32(cp)) || cp > codepoint.Max:
		return 0
	case cp < codepoint.SupplementaryMin:
		return 1
	}
	return 2
}

// AppendCodePoint appends the code units of cp to dst.
func AppendCodePoint(dst []uint16, cp codepoint.CodePoint) ([]uint16, error) {
	switch Len(cp) {
	case 1:
		return append(dst, uint16(cp)), nil
	case 2:
		high, low, _ := codepoint.ToSurrogates(cp)
		return append(dst, high, low), nil
	}
	return dst, errors.InvalidCodePoint(errors.PhaseEncode, errors.FormUTF16, uint32(cp))
}

// Encode converts cps to code units, stopping at the first error.
func Encode(cps []codepoint.CodePoint) ([]uint16, error) {
	out := make([]uint16, 0, len(cps))
	for _, cp := range cps {
		var err error
		if out, err = AppendCodePoint(out, cp); err != nil {
			return out, err
		}
	}
	return out, nil
}

// DecodeOne decodes the character starting at units[pos] and returns it with
// the position just past it. A high surrogate at the end of the input is a
// truncated sequence; any other unpaired surrogate is invalid.
func DecodeOne(units []uint16, pos int) (codepoint.CodePoint, int, error) {
	if pos < 0 || pos >= len(units) {
		return 0, pos, errors.TruncatedSequence(errors.FormUTF16, pos, 1, 0)
	}

	u := uint32(units[pos])
	switch {
	case !codepoint.IsSurrogate(u):
		return codepoint.CodePoint(u), pos + 1, nil
	case codepoint.IsLowSurrogate(u):
		return 0, pos, errors.InvalidSurrogate(errors.FormUTF16, pos, u)
	case pos+1 >= len(units):
		return 0, pos, errors.TruncatedSequence(errors.FormUTF16, pos, 2, 1)
	}

	cp, ok := codepoint.FromSurrogates(units[pos], units[pos+1])
	if !ok {
		return 0, pos, errors.InvalidSurrogate(errors.FormUTF16, pos, u)
	}
	return cp, pos + 2, nil
}

// Decode converts every character in units, stopping at the first error.
func Decode(units []uint16) ([]codepoint.CodePoint, error) {
	out := make([]codepoint.CodePoint, 0, len(units))
	for pos := 0; pos < len(units); {
		cp, next, err := DecodeOne(units, pos)
		if err != nil {
			return out, err
		}
		out = append(out, cp)
		pos = next
	}
	return out, nil
}

// AppendBytes appends units serialized in the given byte order.
func AppendBytes(dst []byte, units []uint16, order binary.AppendByteOrder) []byte {
	for _, u := range units {
		dst = order.AppendUint16(dst, u)
	}
	return dst
}

// Units parses p as code units in the given byte order. An odd trailing byte
// is a truncated sequence.
func Units(p []byte, order binary.ByteOrder) ([]uint16, error) {
	if len(p)%2 != 0 {
		return nil, errors.TruncatedSequence(errors.FormUTF16, len(p)-1, 2, 1)
	}
	out := make([]uint16, len(p)/2)
	for i := range out {
		out[i] = order.Uint16(p[2*i:])
	}
	return out, nil
}
