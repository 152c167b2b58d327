// Package utfcodec converts text between UTF-8 and the UTF-16 and UTF-32
// encoding forms, with strict or legacy validation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	utfcodec/            Root package with one-call helpers
//	├── codepoint/       Code point validity, surrogate pairs, policies
//	├── utf8/            Lead byte classifier, UTF-8 decoder and encoder
//	├── utf16/           UTF-16 code units and surrogate pairing
//	├── utf32/           UTF-32 code units
//	├── bom/             Byte-order mark registry and detection
//	├── transcoder/      Configurable UTF-8 <-> UTF-16/32 conversion
//	├── wasmhost/        wazero host module exposing the codec to guests
//	├── config/          YAML configuration for the command line tool
//	├── errors/          Structured error types for debugging
//	└── cmd/utf8/        Command line converter and inspector
//
// # Quick Start
//
// Convert a whole buffer:
//
//	wide, err := utfcodec.ToUTF16([]byte("héllo"), binary.LittleEndian)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := utfcodec.FromUTF16(wide, binary.LittleEndian)
//
// Decode one character at a time:
//
//	cp, next, err := utf8.Decode(p, pos)
//
// # Policies
//
// codepoint.Strict accepts sequences of up to four bytes that encode a
// Unicode scalar value other than U+FFFE and U+FFFF. codepoint.Legacy accepts
// the original six-byte form up to U+7FFFFFFF, excluding surrogates.
//
// # Errors
//
// Every failure is an *errors.Error carrying a phase, a kind and, where it
// applies, the offset of the offending byte or code unit:
//
//	if errors.KindOf(err) == errors.KindTruncatedSequence {
//	    // wait for more input
//	}
//
// # Thread Safety
//
// Codecs, transcoders and hosts are immutable and safe for concurrent use.
package utfcodec
