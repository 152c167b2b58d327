// Package bom holds the byte-order marks of the Unicode encoding forms and
// detects them at the start of a buffer.
package bom

import "bytes"

// UTF8 is the UTF-8 signature.
const UTF8 = "\xEF\xBB\xBF"

// UTF-16 and UTF-32 marks as read in big-endian order. A little-endian stream
// starts with the bytes of the LE value written big-endian.
const (
	UTF16BE uint16 = 0xFEFF
	UTF16LE uint16 = 0xFFFE
	UTF32BE uint32 = 0x0000FEFF
	UTF32LE uint32 = 0xFFFE0000
)

// Form identifies an encoding form and byte order.
type Form uint8

const (
	None Form = iota
	FormUTF8
	FormUTF16BE
	FormUTF16LE
	FormUTF32BE
	FormUTF32LE
)

var forms = [...]struct {
	name string
	mark []byte
}{
	None:        {"none", nil},
	FormUTF8:    {"UTF-8", []byte(UTF8)},
	FormUTF16BE: {"UTF-16BE", []byte{0xFE, 0xFF}},
	FormUTF16LE: {"UTF-16LE", []byte{0xFF, 0xFE}},
	FormUTF32BE: {"UTF-32BE", []byte{0x00, 0x00, 0xFE, 0xFF}},
	FormUTF32LE: {"UTF-32LE", []byte{0xFF, 0xFE, 0x00, 0x00}},
}

func (f Form) String() string {
	if int(f) < len(forms) {
		return forms[f].name
	}
	return "unknown"
}

// Bytes returns a copy of the mark for f, or nil for None.
func (f Form) Bytes() []byte {
	if int(f) >= len(forms) || f == None {
		return nil
	}
	return append([]byte(nil), forms[f].mark...)
}

// Len returns the mark length in bytes.
func (f Form) Len() int {
	if int(f) >= len(forms) {
		return 0
	}
	return len(forms[f].mark)
}

// Detect reports the mark at the start of p and its length. UTF-32LE is
// tried before UTF-16LE since FF FE 00 00 starts with the UTF-16LE mark.
func Detect(p []byte) (Form, int) {
	for _, f := range []Form{FormUTF32LE, FormUTF32BE, FormUTF8, FormUTF16BE, FormUTF16LE} {
		if bytes.HasPrefix(p, forms[f].mark) {
			return f, len(forms[f].mark)
		}
	}
	return None, 0
}
