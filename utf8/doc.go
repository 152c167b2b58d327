// Package utf8 encodes and decodes single characters in UTF-8.
//
// # Lead Bytes
//
// The first byte of a sequence determines its length:
//
//	Byte       Class   Continuations
//	──────────────────────────────────
//	00-7F      ASCII   0
//	80-BF      -       continuation byte, invalid as a lead
//	C0-C1      -       invalid (overlong ASCII)
//	C2-DF      Lead2   1
//	E0-EF      Lead3   2
//	F0-F7      Lead4   3
//	F8-FB      Lead5   4 (legacy policy only)
//	FC-FD      Lead6   5 (legacy policy only)
//	FE-FF      -       invalid
//
// Classification is a lookup in a table built once at package initialization.
//
// # Policies
//
// A Codec carries a codepoint.Policy. Strict accepts sequences of up to four
// bytes encoding values accepted by codepoint.IsValid. Legacy accepts the five-
// and six-byte forms of RFC 2279 and values up to 0x7FFFFFFF. The package level
// Decode and Encode functions use Strict.
//
// # Errors
//
// Decoding reports one of four kinds, each carrying the input offset:
//
//	invalid_lead_byte          byte cannot start a sequence under the policy
//	invalid_continuation_byte  byte after a lead is outside 80-BF
//	truncated_sequence         input ends inside a character
//	overlong_or_out_of_range   value is not minimally encoded or not accepted
//
// Encoding reports invalid_code_point. Nothing is logged or substituted here;
// replacement policy belongs to the caller (see package transcoder).
//
// # Thread Safety
//
// All functions are pure. A Codec is a value and may be shared freely.
package utf8
