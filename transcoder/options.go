package transcoder

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wippyai/utfcodec/bom"
	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// Form is the wide encoding form on the other side of UTF-8.
type Form uint8

const (
	UTF32 Form = iota
	UTF16
)

func (f Form) String() string {
	if f == UTF16 {
		return "16"
	}
	return "32"
}

// UnitSize returns the width of one code unit in bytes.
func (f Form) UnitSize() int {
	if f == UTF16 {
		return 2
	}
	return 4
}

// HexDigits returns the number of hex digits that spell one code unit.
func (f Form) HexDigits() int {
	return 2 * f.UnitSize()
}

func (f Form) name() string {
	if f == UTF16 {
		return errors.FormUTF16
	}
	return errors.FormUTF32
}

// ParseForm accepts "16", "32", "utf-16" and "utf-32".
func ParseForm(s string) (Form, error) {
	switch s {
	case "32", "utf-32", "UTF-32", "":
		return UTF32, nil
	case "16", "utf-16", "UTF-16":
		return UTF16, nil
	}
	return 0, errors.InvalidSetting("form", s, "16", "32")
}

// Order is the byte order of serialized wide code units.
type Order uint8

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) String() string {
	if o == LittleEndian {
		return "le"
	}
	return "be"
}

func (o Order) byteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ParseOrder accepts "be" and "le".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "be", "BE", "":
		return BigEndian, nil
	case "le", "LE":
		return LittleEndian, nil
	}
	return 0, errors.InvalidSetting("order", s, "be", "le")
}

// ErrorMode decides what happens when input cannot be converted.
type ErrorMode uint8

const (
	// Stop reports the first invalid input as an error.
	Stop ErrorMode = iota
	// Warn logs each invalid input, substitutes U+FFFD and continues.
	Warn
	// Replace substitutes U+FFFD silently.
	Replace
)

func (m ErrorMode) String() string {
	switch m {
	case Warn:
		return "warn"
	case Replace:
		return "replace"
	}
	return "error"
}

// ParseErrorMode accepts "error", "warn" and "replace".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "error", "":
		return Stop, nil
	case "warn":
		return Warn, nil
	case "replace":
		return Replace, nil
	}
	return 0, errors.InvalidSetting("errors", s, "error", "warn", "replace")
}

// Options configures a Transcoder. The zero value converts strict UTF-8 to
// big-endian UTF-32 without a byte-order mark and stops at the first error.
type Options struct {
	Form   Form
	Order  Order
	BOM    bool
	Policy codepoint.Policy
	Errors ErrorMode

	// Logger receives substitution warnings. Nil uses the package logger.
	Logger *zap.Logger
}

// Validate checks that every field holds a known value.
func (o Options) Validate() error {
	if o.Form > UTF16 {
		return errors.InvalidSetting("form", o.Form, "16", "32")
	}
	if o.Order > LittleEndian {
		return errors.InvalidSetting("order", o.Order, "be", "le")
	}
	if o.Policy > codepoint.Legacy {
		return errors.InvalidSetting("policy", o.Policy, "strict", "legacy")
	}
	if o.Errors > Replace {
		return errors.InvalidSetting("errors", o.Errors, "error", "warn", "replace")
	}
	return nil
}

// Mark returns the byte-order mark of the configured form and order.
func (o Options) Mark() bom.Form {
	switch {
	case o.Form == UTF16 && o.Order == LittleEndian:
		return bom.FormUTF16LE
	case o.Form == UTF16:
		return bom.FormUTF16BE
	case o.Order == LittleEndian:
		return bom.FormUTF32LE
	}
	return bom.FormUTF32BE
}
