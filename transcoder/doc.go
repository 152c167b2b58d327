// Package transcoder converts text between UTF-8 and a wide encoding form
// (UTF-16 or UTF-32) with a configurable byte order, byte-order mark,
// validation policy and error mode.
//
// # Key Types
//
//	Options     - form, order, BOM, policy, error mode, logger
//	Transcoder  - converts code points, code units and whole buffers
//
// # Conversion Flow
//
//	UTF-8 bytes ──DecodeUTF8──▶ code points ──Units──▶ code units
//	code units ──FromUnits──▶ code points ──EncodeUTF8──▶ UTF-8 bytes
//
// Whole buffers and streams go through Encoding, which returns a
// golang.org/x/text encoding.Encoding:
//
//	t, _ := transcoder.New(transcoder.Options{Form: transcoder.UTF16, BOM: true})
//	wide, err := t.ToWide([]byte("héllo"))
//	r := transform.NewReader(src, t.Encoding().NewDecoder())
//
// The decoder consumes a leading byte-order mark of the configured form and
// switches to the byte order it announces.
//
// Error offsets from Encoding's transformers, ToWide and FromWide count bytes
// from the start of the input.
//
// # Error Modes
//
//	Stop     first invalid input is returned as *errors.Error
//	Warn     each invalid input is logged and replaced by U+FFFD
//	Replace  each invalid input is replaced by U+FFFD
//
// An invalid UTF-8 sequence is replaced one byte at a time, so a truncated
// three-byte sequence yields as many U+FFFD as it has bytes.
//
// # Thread Safety
//
// Transcoder is immutable and safe for concurrent use. The encoders and
// decoders returned by Encoding keep per-stream state and are not.
package transcoder
