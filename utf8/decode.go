package utf8

import (
	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// offsets cancels the marker bits that the lead and continuation bytes add to
// the accumulator, indexed by continuation count. Values wrap modulo 2^32.
var offsets = [UTFMax]uint32{
	0x0,
	0x3080,
	0xE2080,
	0x3C82080,
	0xFA082080,
	0x82082080,
}

// Decode decodes the character starting at p[pos] and returns it together
// with the position just past it. On error the returned position is pos.
//
// A byte that is present but not a continuation byte is reported before a
// missing one, so truncated_sequence always means the input is a valid prefix.
func (c Codec) Decode(p []byte, pos int) (codepoint.CodePoint, int, error) {
	if pos < 0 || pos >= len(p) {
		return 0, pos, errors.TruncatedSequence(errors.FormUTF8, pos, 1, 0)
	}

	lead := p[pos]
	if lead < 0x80 {
		return codepoint.CodePoint(lead), pos + 1, nil
	}

	class := Classify(lead)
	if !class.Valid() || class.Len() > c.Policy.MaxLen() {
		return 0, pos, errors.InvalidLeadByte(pos, lead)
	}

	n := class.Continuations()
	acc := uint32(lead)
	for i := 1; i <= n; i++ {
		if pos+i >= len(p) {
			return 0, pos, errors.TruncatedSequence(errors.FormUTF8, pos, n+1, i)
		}
		b := p[pos+i]
		if !IsContinuation(b) {
			return 0, pos, errors.InvalidContinuationByte(pos+i, b)
		}
		acc = acc<<6 + uint32(b)
	}

	cp := codepoint.CodePoint(acc - offsets[n])
	if Len(cp) != n+1 {
		return 0, pos, errors.OverlongOrOutOfRange(pos, uint32(cp), n+1, true)
	}
	if !c.Policy.Valid(cp) {
		return 0, pos, errors.OverlongOrOutOfRange(pos, uint32(cp), n+1, false)
	}
	return cp, pos + n + 1, nil
}

// DecodeAll decodes every character in p. It stops at the first error and
// returns the code points decoded before it.
func (c Codec) DecodeAll(p []byte) ([]codepoint.CodePoint, error) {
	out := make([]codepoint.CodePoint, 0, len(p))
	for pos := 0; pos < len(p); {
		cp, next, err := c.Decode(p, pos)
		if err != nil {
			return out, err
		}
		out = append(out, cp)
		pos = next
	}
	return out, nil
}
