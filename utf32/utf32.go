// Package utf32 converts between code points and UTF-32 code units and their
// byte serialization. Every unit is one code point, so validation is the
// whole job: the policy decides which values pass.
package utf32

import (
	"encoding/binary"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// Encode converts cps to code units, stopping at the first value the policy rejects.
func Encode(cps []codepoint.CodePoint, policy codepoint.Policy) ([]uint32, error) {
	out := make([]uint32, 0, len(cps))
	for _, cp := range cps {
		if !policy.Valid(cp) {
			return out, errors.InvalidCodePoint(errors.PhaseEncode, errors.FormUTF32, uint32(cp))
		}
		out = append(out, uint32(cp))
	}
	return out, nil
}

// Decode converts units to code points, stopping at the first value the policy rejects.
func Decode(units []uint32, policy codepoint.Policy) ([]codepoint.CodePoint, error) {
	out := make([]codepoint.CodePoint, 0, len(units))
	for i, u := range units {
		cp := codepoint.CodePoint(u)
		if !policy.Valid(cp) {
			return out, errors.New(errors.PhaseDecode, errors.KindInvalidCodePoint).
				Form(errors.FormUTF32).
				Offset(i).
				Value(u).
				Detail("U+%04X is outside the accepted range", u).
				Build()
		}
		out = append(out, cp)
	}
	return out, nil
}

// AppendBytes appends units serialized in the given byte order.
func AppendBytes(dst []byte, units []uint32, order binary.AppendByteOrder) []byte {
	for _, u := range units {
		dst = order.AppendUint32(dst, u)
	}
	return dst
}

// Units parses p as code units in the given byte order. Trailing bytes that do
// not fill a unit are a truncated sequence.
func Units(p []byte, order binary.ByteOrder) ([]uint32, error) {
	if rem := len(p) % 4; rem != 0 {
		return nil, errors.TruncatedSequence(errors.FormUTF32, len(p)-rem, 4, rem)
	}
	out := make([]uint32, len(p)/4)
	for i := range out {
		out[i] = order.Uint32(p[4*i:])
	}
	return out, nil
}
