package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		excludes []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidContinuationByte,
				Form:   FormUTF8,
				Offset: 1,
				Detail: "'(' is not a continuation byte",
			},
			contains: []string{"[decode]", "invalid_continuation_byte", "in utf-8", "at offset 1", "'('"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindInvalidCodePoint,
				Offset: NoOffset,
			},
			contains: []string{"[encode]", "invalid_code_point"},
			excludes: []string{"offset", " in "},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Offset: NoOffset,
				Detail: "read config",
				Cause:  errors.New("no such file"),
			},
			contains: []string{"[config]", "invalid_input", "read config", "caused by", "no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("error message %q should not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseTranscode, KindInvalidInput, cause, "transcode")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := InvalidLeadByte(3, 0xFF)

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidLeadByte}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidLeadByte}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTruncatedSequence}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("line 2: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindInvalidLeadByte}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", InvalidCodePoint(PhaseEncode, FormUTF8, 0x110000))); got != KindInvalidCodePoint {
		t.Errorf("KindOf = %q, want %q", got, KindInvalidCodePoint)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidSurrogate).
		Form(FormUTF16).
		Offset(4).
		Value(uint32(0xDC00)).
		Cause(cause).
		Detail("low surrogate %04X without high", 0xDC00).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidSurrogate {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidSurrogate)
	}
	if err.Form != FormUTF16 {
		t.Errorf("Form = %q, want %q", err.Form, FormUTF16)
	}
	if err.Offset != 4 {
		t.Errorf("Offset = %d, want 4", err.Offset)
	}
	if err.Value != uint32(0xDC00) {
		t.Errorf("Value = %v, want 0xDC00", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "low surrogate DC00 without high" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_DefaultOffset(t *testing.T) {
	err := New(PhaseEncode, KindUnsupported).Build()
	if err.Offset != NoOffset {
		t.Errorf("Offset = %d, want NoOffset", err.Offset)
	}
}

func TestPrintableByte(t *testing.T) {
	tests := []struct {
		in   byte
		want string
	}{
		{'A', "'A'"},
		{'(', "'('"},
		{'\n', `'\n'`},
		{'\t', `'\t'`},
		{0x00, "#x00"},
		{0x7F, "#x7F"},
		{0xC3, "#xC3"},
		{0xFF, "#xFF"},
	}
	for _, tt := range tests {
		if got := PrintableByte(tt.in); got != tt.want {
			t.Errorf("PrintableByte(%#x) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidLeadByte", func(t *testing.T) {
		err := InvalidLeadByte(0, 0xC0)
		if err.Kind != KindInvalidLeadByte || err.Value != byte(0xC0) || err.Offset != 0 {
			t.Errorf("got %+v", err)
		}
		if !strings.Contains(err.Error(), "#xC0") {
			t.Errorf("message %q should name the byte", err.Error())
		}
	})

	t.Run("InvalidContinuationByte", func(t *testing.T) {
		err := InvalidContinuationByte(1, 0x28)
		if err.Kind != KindInvalidContinuationByte || err.Offset != 1 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("TruncatedSequence", func(t *testing.T) {
		err := TruncatedSequence(FormUTF8, 0, 3, 2)
		if err.Kind != KindTruncatedSequence {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "3 bytes") {
			t.Errorf("Detail = %q", err.Detail)
		}
		err = TruncatedSequence(FormUTF16, 2, 2, 1)
		if !strings.Contains(err.Detail, "2 units") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("OverlongOrOutOfRange", func(t *testing.T) {
		err := OverlongOrOutOfRange(0, 0x2F, 3, true)
		if err.Kind != KindOverlongOrOutOfRange || !strings.Contains(err.Detail, "overlong") {
			t.Errorf("got %+v", err)
		}
		err = OverlongOrOutOfRange(0, 0xD800, 3, false)
		if strings.Contains(err.Detail, "overlong") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidCodePoint", func(t *testing.T) {
		err := InvalidCodePoint(PhaseEncode, FormUTF8, 0x110000)
		if err.Kind != KindInvalidCodePoint || err.Value != uint32(0x110000) {
			t.Errorf("got %+v", err)
		}
		if !strings.Contains(err.Error(), "U+110000") {
			t.Errorf("message %q", err.Error())
		}
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		err := ShortBuffer(PhaseEncode, 4, 2)
		if err.Kind != KindShortBuffer || err.Value != 4 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidSetting", func(t *testing.T) {
		err := InvalidSetting("policy", "loose", "strict", "legacy")
		if err.Phase != PhaseConfig || !strings.Contains(err.Detail, "strict, legacy") {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := errors.New("duplicate")
		err := Registration("utfcodec", "decode_one", cause)
		if err.Kind != KindRegistration || !errors.Is(err, cause) {
			t.Errorf("got %+v", err)
		}
	})
}
