package transcoder

import (
	"encoding/binary"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/wippyai/utfcodec/bom"
	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/utf8"
)

// Encoding returns the wide form as an encoding.Encoding. Its encoder reads
// UTF-8 and writes the wide form; its decoder does the reverse. Error offsets
// count from the start of the input since the last Reset.
func (t *Transcoder) Encoding() encoding.Encoding {
	return wideEncoding{t: t}
}

type wideEncoding struct {
	t *Transcoder
}

func (e wideEncoding) NewDecoder() *encoding.Decoder {
	d := &decoder{t: e.t}
	d.Reset()
	return &encoding.Decoder{Transformer: d}
}

func (e wideEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{t: e.t}}
}

func (e wideEncoding) String() string {
	return e.t.String()
}

// encoder transforms UTF-8 into the wide form.
type encoder struct {
	t        *Transcoder
	markDone bool
	base     int
}

func (e *encoder) Reset() {
	e.markDone = false
	e.base = 0
}

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { e.base += nSrc }()
	opts := e.t.opts
	if !e.markDone && opts.BOM {
		mark := opts.Mark().Bytes()
		if len(dst) < len(mark) {
			return 0, 0, transform.ErrShortDst
		}
		nDst = copy(dst, mark)
	}
	e.markDone = true

	order := opts.Order.byteOrder()
	width := opts.Form.UnitSize()
	var scratch [2]uint32

	for nSrc < len(src) {
		var bad error
		cp, next, derr := e.t.codec.Decode(src, nSrc)
		size := next - nSrc
		if derr != nil {
			if !atEOF && errors.KindOf(derr) == errors.KindTruncatedSequence {
				err = transform.ErrShortSrc
				break
			}
			bad, cp, size = shiftOffset(derr, e.base), codepoint.Replacement, 1
		}

		units, uerr := e.t.AppendUnits(scratch[:0], cp)
		if uerr != nil {
			bad = atOffset(uerr, e.base+nSrc)
			units, _ = e.t.AppendUnits(scratch[:0], codepoint.Replacement)
		}
		if nDst+len(units)*width > len(dst) {
			err = transform.ErrShortDst
			break
		}
		if bad != nil && !e.t.substitute(bad) {
			err = bad
			break
		}

		for _, u := range units {
			putUnit(dst[nDst:], u, width, order)
			nDst += width
		}
		nSrc += size
	}
	return nDst, nSrc, err
}

func putUnit(dst []byte, u uint32, width int, order binary.ByteOrder) {
	if width == 2 {
		order.PutUint16(dst, uint16(u))
		return
	}
	order.PutUint32(dst, u)
}

// decoder transforms the wide form into UTF-8.
type decoder struct {
	t       *Transcoder
	order   binary.ByteOrder
	started bool
	base    int
}

func (d *decoder) Reset() {
	d.order = d.t.opts.Order.byteOrder()
	d.started = false
	d.base = 0
}

// sniff returns the byte order announced by a mark of the configured form at
// the start of src.
func (d *decoder) sniff(src []byte) (binary.ByteOrder, bool) {
	form, _ := bom.Detect(src)
	if d.t.opts.Form == UTF16 {
		switch form {
		case bom.FormUTF16BE:
			return binary.BigEndian, true
		case bom.FormUTF16LE, bom.FormUTF32LE:
			// FF FE 00 00 is a UTF-16LE mark followed by U+0000.
			return binary.LittleEndian, true
		}
		return nil, false
	}
	switch form {
	case bom.FormUTF32BE:
		return binary.BigEndian, true
	case bom.FormUTF32LE:
		return binary.LittleEndian, true
	}
	return nil, false
}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { d.base += nSrc }()
	width := d.t.opts.Form.UnitSize()
	if !d.started {
		if len(src) < width && !atEOF {
			return 0, 0, transform.ErrShortSrc
		}
		if order, ok := d.sniff(src); ok {
			d.order = order
			nSrc = width
		}
		d.started = true
	}

	for nSrc < len(src) {
		cp, size, bad, short := d.read(src, nSrc, atEOF)
		if short {
			err = transform.ErrShortSrc
			break
		}
		n := utf8.Len(cp)
		if nDst+n > len(dst) {
			err = transform.ErrShortDst
			break
		}
		if bad != nil {
			if bad = shiftOffset(bad, d.base); !d.t.substitute(bad) {
				err = bad
				break
			}
		}
		n, _ = d.t.codec.EncodeInto(dst[nDst:], cp)
		nDst += n
		nSrc += size
	}
	return nDst, nSrc, err
}

// read decodes the character at src[off]. When the input is invalid it
// returns U+FFFD, the number of bytes to skip and the reason. short reports
// that more input is needed before deciding.
func (d *decoder) read(src []byte, off int, atEOF bool) (cp codepoint.CodePoint, size int, bad error, short bool) {
	opts := d.t.opts
	form := opts.Form.name()
	width := opts.Form.UnitSize()
	rem := len(src) - off
	cp, size = codepoint.Replacement, width

	if rem < width {
		if !atEOF {
			return cp, 0, nil, true
		}
		return cp, rem, errors.New(errors.PhaseDecode, errors.KindTruncatedSequence).
			Form(form).
			Offset(off).
			Value(width).
			Detail("code unit needs %d bytes, input has %d", width, rem).
			Build(), false
	}

	var value uint32
	if opts.Form == UTF32 {
		value = d.order.Uint32(src[off:])
	} else {
		hi := d.order.Uint16(src[off:])
		value = uint32(hi)
		switch {
		case codepoint.IsLowSurrogate(value):
			return cp, size, errors.InvalidSurrogate(form, off, value), false
		case codepoint.IsHighSurrogate(value):
			if rem < 2*width {
				if !atEOF {
					return cp, 0, nil, true
				}
				return cp, size, errors.TruncatedSequence(form, off, 2, 1), false
			}
			pair, ok := codepoint.FromSurrogates(hi, d.order.Uint16(src[off+width:]))
			if !ok {
				return cp, size, errors.InvalidSurrogate(form, off, value), false
			}
			value, size = uint32(pair), 2*width
		}
	}

	if !opts.Policy.Valid(codepoint.CodePoint(value)) {
		return cp, size, errors.New(errors.PhaseDecode, errors.KindInvalidCodePoint).
			Form(form).
			Offset(off).
			Value(value).
			Detail("U+%04X is outside the accepted range", value).
			Build(), false
	}
	return codepoint.CodePoint(value), size, nil, false
}
