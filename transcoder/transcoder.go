package transcoder

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/utf16"
	"github.com/wippyai/utfcodec/utf8"
)

// Transcoder converts between UTF-8 and one wide form under fixed Options.
// It holds no mutable state and is safe for concurrent use.
type Transcoder struct {
	opts  Options
	codec utf8.Codec
}

// New validates opts and returns a Transcoder for them.
func New(opts Options) (*Transcoder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Transcoder{opts: opts, codec: utf8.New(opts.Policy)}, nil
}

// Options returns the options the Transcoder was built with.
func (t *Transcoder) Options() Options {
	return t.opts
}

func (t *Transcoder) String() string {
	return fmt.Sprintf("%s (%s)", t.opts.Mark(), t.opts.Policy)
}

func (t *Transcoder) log() *zap.Logger {
	if t.opts.Logger != nil {
		return t.opts.Logger
	}
	return Logger()
}

// substitute applies the error mode to err and reports whether conversion
// should continue with U+FFFD in place of the bad input.
func (t *Transcoder) substitute(err error) bool {
	switch t.opts.Errors {
	case Stop:
		return false
	case Warn:
		fields := []zap.Field{zap.String("kind", string(errors.KindOf(err)))}
		var e *errors.Error
		if stderrors.As(err, &e) {
			fields = append(fields, zap.String("phase", string(e.Phase)))
			if e.Offset != errors.NoOffset {
				fields = append(fields, zap.Int("offset", e.Offset))
			}
			if b, ok := e.Value.(byte); ok {
				fields = append(fields, zap.String("byte", errors.PrintableByte(b)))
			}
			fields = append(fields, zap.String("detail", e.Detail))
		}
		t.log().Warn("invalid input replaced", fields...)
	}
	return true
}

// DecodeUTF8 decodes p into code points. In Stop mode it returns the code
// points before the first invalid sequence together with the error. In the
// other modes each invalid byte becomes U+FFFD and the count of replacements
// is returned.
func (t *Transcoder) DecodeUTF8(p []byte) ([]codepoint.CodePoint, int, error) {
	out := make([]codepoint.CodePoint, 0, len(p))
	replaced := 0
	for pos := 0; pos < len(p); {
		cp, next, err := t.codec.Decode(p, pos)
		if err != nil {
			if !t.substitute(err) {
				return out, replaced, err
			}
			out = append(out, codepoint.Replacement)
			replaced++
			pos++
			continue
		}
		out = append(out, cp)
		pos = next
	}
	return out, replaced, nil
}

// EncodeUTF8 encodes cps as UTF-8 under the configured policy.
func (t *Transcoder) EncodeUTF8(cps []codepoint.CodePoint) ([]byte, int, error) {
	buf := getBuf()
	defer putBuf(buf)

	replaced := 0
	for i, cp := range cps {
		next, err := t.codec.Append(*buf, cp)
		if err != nil {
			err = atOffset(err, i)
			if !t.substitute(err) {
				return append([]byte(nil), *buf...), replaced, err
			}
			next, _ = t.codec.Append(*buf, codepoint.Replacement)
			replaced++
		}
		*buf = next
	}
	return append([]byte(nil), *buf...), replaced, nil
}

// Units returns the code units of cp in the configured wide form.
func (t *Transcoder) Units(cp codepoint.CodePoint) ([]uint32, error) {
	return t.AppendUnits(nil, cp)
}

// AppendUnits appends the code units of cp in the configured wide form to dst.
// UTF-16 units are widened to uint32.
func (t *Transcoder) AppendUnits(dst []uint32, cp codepoint.CodePoint) ([]uint32, error) {
	if !t.opts.Policy.Valid(cp) {
		return dst, errors.InvalidCodePoint(errors.PhaseEncode, t.opts.Form.name(), uint32(cp))
	}
	if t.opts.Form == UTF32 {
		return append(dst, uint32(cp)), nil
	}
	var tmp [2]uint16
	units, err := utf16.AppendCodePoint(tmp[:0], cp)
	if err != nil {
		return dst, err
	}
	for _, u := range units {
		dst = append(dst, uint32(u))
	}
	return dst, nil
}

// EncodeUnits returns the code units of each code point in cps. Error handling
// follows the configured mode; a replaced code point yields the units of
// U+FFFD.
func (t *Transcoder) EncodeUnits(cps []codepoint.CodePoint) ([][]uint32, int, error) {
	out := make([][]uint32, 0, len(cps))
	replaced := 0
	for i, cp := range cps {
		units, err := t.Units(cp)
		if err != nil {
			err = atOffset(err, i)
			if !t.substitute(err) {
				return out, replaced, err
			}
			units, _ = t.Units(codepoint.Replacement)
			replaced++
		}
		out = append(out, units)
	}
	return out, replaced, nil
}

// FromUnits converts wide code units to code points. For UTF-16 a high
// surrogate followed by a low surrogate becomes one code point. Error handling
// follows the configured mode; offsets count units.
func (t *Transcoder) FromUnits(units []uint32) ([]codepoint.CodePoint, int, error) {
	out := make([]codepoint.CodePoint, 0, len(units))
	replaced := 0
	for i := 0; i < len(units); {
		cp, n, err := t.unit(units, i)
		if err != nil {
			if !t.substitute(err) {
				return out, replaced, err
			}
			out = append(out, codepoint.Replacement)
			replaced++
			i++
			continue
		}
		out = append(out, cp)
		i += n
	}
	return out, replaced, nil
}

func (t *Transcoder) unit(units []uint32, i int) (codepoint.CodePoint, int, error) {
	u := units[i]
	n := 1
	cp := codepoint.CodePoint(u)

	if t.opts.Form == UTF16 {
		switch {
		case u > 0xFFFF:
			return 0, 0, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Form(errors.FormUTF16).
				Offset(i).
				Value(u).
				Detail("%X does not fit in a 16-bit code unit", u).
				Build()
		case codepoint.IsLowSurrogate(u):
			return 0, 0, errors.InvalidSurrogate(errors.FormUTF16, i, u)
		case codepoint.IsHighSurrogate(u):
			if i+1 >= len(units) {
				return 0, 0, errors.TruncatedSequence(errors.FormUTF16, i, 2, 1)
			}
			lo := units[i+1]
			pair, ok := codepoint.FromSurrogates(uint16(u), uint16(lo))
			if lo > 0xFFFF || !ok {
				return 0, 0, errors.InvalidSurrogate(errors.FormUTF16, i, u)
			}
			cp, n = pair, 2
		}
	}

	if !t.opts.Policy.Valid(cp) {
		return 0, 0, errors.New(errors.PhaseDecode, errors.KindInvalidCodePoint).
			Form(t.opts.Form.name()).
			Offset(i).
			Value(uint32(cp)).
			Detail("U+%04X is outside the accepted range", uint32(cp)).
			Build()
	}
	return cp, n, nil
}

// ToWide converts UTF-8 text to the serialized wide form, including the
// byte-order mark when configured.
func (t *Transcoder) ToWide(p []byte) ([]byte, error) {
	return t.Encoding().NewEncoder().Bytes(p)
}

// FromWide converts the serialized wide form to UTF-8. A leading byte-order
// mark of the configured form is consumed and selects the byte order.
func (t *Transcoder) FromWide(p []byte) ([]byte, error) {
	return t.Encoding().NewDecoder().Bytes(p)
}

func atOffset(err error, off int) error {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Offset == errors.NoOffset {
		c := *e
		c.Offset = off
		return &c
	}
	return err
}

// shiftOffset moves a reported offset by base.
func shiftOffset(err error, base int) error {
	var e *errors.Error
	if base == 0 || !stderrors.As(err, &e) || e.Offset == errors.NoOffset {
		return err
	}
	c := *e
	c.Offset += base
	return &c
}
