package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode    Phase = "decode"    // encoded form to code points
	PhaseEncode    Phase = "encode"    // code points to encoded form
	PhaseValidate  Phase = "validate"  // code point validation
	PhaseTranscode Phase = "transcode" // buffer transcoding between forms
	PhaseParse     Phase = "parse"     // command-line input parsing
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseHost      Phase = "host"      // wasm host module operations
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidLeadByte         Kind = "invalid_lead_byte"
	KindInvalidContinuationByte Kind = "invalid_continuation_byte"
	KindTruncatedSequence       Kind = "truncated_sequence"
	KindOverlongOrOutOfRange    Kind = "overlong_or_out_of_range"
	KindInvalidCodePoint        Kind = "invalid_code_point"
	KindInvalidSurrogate        Kind = "invalid_surrogate"
	KindShortBuffer             Kind = "short_buffer"
	KindInvalidInput            Kind = "invalid_input"
	KindUnsupported             Kind = "unsupported"
	KindRegistration            Kind = "registration"
	KindInstantiation           Kind = "instantiation"
)

// Encoding form names used in Error.Form.
const (
	FormUTF8  = "utf-8"
	FormUTF16 = "utf-16"
	FormUTF32 = "utf-32"
)

// NoOffset marks an error that is not tied to an input position.
const NoOffset = -1

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Form   string
	Detail string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Form != "" {
		b.WriteString(" in ")
		b.WriteString(e.Form)
	}

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Form sets the encoding form name
func (b *Builder) Form(form string) *Builder {
	b.err.Form = form
	return b
}

// Offset sets the input offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// PrintableByte renders b as itself when it is printable ASCII and as #xNN otherwise.
func PrintableByte(b byte) string {
	switch {
	case b == '\n':
		return `'\n'`
	case b == '\r':
		return `'\r'`
	case b == '\t':
		return `'\t'`
	case b >= 0x20 && b < 0x7F:
		return "'" + string(rune(b)) + "'"
	}
	return fmt.Sprintf("#x%02X", b)
}

// Convenience constructors for the codec taxonomy

// InvalidLeadByte creates an error for a byte that cannot start a UTF-8 sequence
func InvalidLeadByte(offset int, b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidLeadByte,
		Form:   FormUTF8,
		Offset: offset,
		Value:  b,
		Detail: fmt.Sprintf("%s is not a valid lead byte", PrintableByte(b)),
	}
}

// InvalidContinuationByte creates an error for a byte outside 0x80-0xBF where a continuation byte was expected
func InvalidContinuationByte(offset int, b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidContinuationByte,
		Form:   FormUTF8,
		Offset: offset,
		Value:  b,
		Detail: fmt.Sprintf("%s is not a continuation byte", PrintableByte(b)),
	}
}

// TruncatedSequence creates an error for input that ends inside a character.
// want and have count bytes for UTF-8 and code units otherwise.
func TruncatedSequence(form string, offset, want, have int) *Error {
	unit := "units"
	if form == FormUTF8 {
		unit = "bytes"
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncatedSequence,
		Form:   form,
		Offset: offset,
		Value:  want,
		Detail: fmt.Sprintf("sequence needs %d %s, input has %d", want, unit, have),
	}
}

// OverlongOrOutOfRange creates an error for a syntactically decodable sequence
// whose value is not minimally encoded or not accepted by the validator.
func OverlongOrOutOfRange(offset int, cp uint32, length int, overlong bool) *Error {
	detail := fmt.Sprintf("U+%04X is not a valid code point", cp)
	if overlong {
		detail = fmt.Sprintf("U+%04X encoded in %d bytes is overlong", cp, length)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverlongOrOutOfRange,
		Form:   FormUTF8,
		Offset: offset,
		Value:  cp,
		Detail: detail,
	}
}

// InvalidCodePoint creates an error for a value the validator rejects
func InvalidCodePoint(phase Phase, form string, cp uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCodePoint,
		Form:   form,
		Offset: NoOffset,
		Value:  cp,
		Detail: fmt.Sprintf("U+%04X is outside the accepted range", cp),
	}
}

// InvalidSurrogate creates an error for an unpaired or misordered surrogate
func InvalidSurrogate(form string, offset int, unit uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidSurrogate,
		Form:   form,
		Offset: offset,
		Value:  unit,
		Detail: fmt.Sprintf("unpaired surrogate %04X", unit),
	}
}

// ShortBuffer creates an error for a destination buffer that is too small
func ShortBuffer(phase Phase, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShortBuffer,
		Offset: NoOffset,
		Value:  need,
		Detail: fmt.Sprintf("need %d bytes, buffer has %d", need, have),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: detail,
	}
}

// InvalidSetting creates a configuration error for a field with an unknown value
func InvalidSetting(field string, value any, allowed ...string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Value:  value,
		Detail: fmt.Sprintf("%s: %v (want one of %s)", field, value, strings.Join(allowed, ", ")),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: NoOffset,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Registration creates a host function registration error
func Registration(module, name string, cause error) *Error {
	target := module
	if name != "" {
		target += "." + name
	}
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Offset: NoOffset,
		Detail: "register " + target,
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(module string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindInstantiation,
		Offset: NoOffset,
		Detail: fmt.Sprintf("instantiate module %q", module),
		Cause:  cause,
	}
}
