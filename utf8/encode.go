package utf8

import (
	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// leadMarkers holds the fixed high bits of the first byte, indexed by length.
var leadMarkers = [UTFMax + 1]byte{0, 0x00, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC}

// EncodeInto writes the minimal encoding of cp to the start of dst and returns
// the number of bytes written. dst needs Len(cp) bytes; UTFMax always suffices.
func (c Codec) EncodeInto(dst []byte, cp codepoint.CodePoint) (int, error) {
	if !c.Policy.Valid(cp) {
		return 0, errors.InvalidCodePoint(errors.PhaseEncode, errors.FormUTF8, uint32(cp))
	}
	n := Len(cp)
	if len(dst) < n {
		return 0, errors.ShortBuffer(errors.PhaseEncode, n, len(dst))
	}

	v := uint32(cp)
	for i := n - 1; i > 0; i-- {
		dst[i] = 0x80 | byte(v&0x3F)
		v >>= 6
	}
	dst[0] = leadMarkers[n] | byte(v)
	return n, nil
}

// Encode returns the minimal encoding of cp.
func (c Codec) Encode(cp codepoint.CodePoint) ([]byte, error) {
	var buf [UTFMax]byte
	n, err := c.EncodeInto(buf[:], cp)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// Append appends the encoding of cp to dst. On error dst is returned unchanged.
func (c Codec) Append(dst []byte, cp codepoint.CodePoint) ([]byte, error) {
	var buf [UTFMax]byte
	n, err := c.EncodeInto(buf[:], cp)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}

// EncodeAll encodes every code point in cps, stopping at the first error.
func (c Codec) EncodeAll(cps []codepoint.CodePoint) ([]byte, error) {
	out := make([]byte, 0, len(cps))
	for _, cp := range cps {
		var err error
		if out, err = c.Append(out, cp); err != nil {
			return out, err
		}
	}
	return out, nil
}
