// Package errors provides structured error types for the utfcodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the encoding form, the input offset, the offending value
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidContinuationByte).
//		Form("utf-8").
//		Offset(1).
//		Value(byte(0x28)).
//		Detail("expected continuation byte").
//		Build()
//
// Or use convenience constructors for the codec taxonomy:
//
//	err := errors.InvalidLeadByte(0, 0xFF)
//	err := errors.TruncatedSequence(errors.FormUTF8, 0, 3, 1)
//	err := errors.InvalidCodePoint(errors.PhaseEncode, 0x110000)
//
// All errors implement the standard error interface and support errors.Is/As.
// The codec packages never log or substitute; they only return these values.
package errors
