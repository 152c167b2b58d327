package hexarg

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	cerrors "github.com/wippyai/utfcodec/errors"
)

func TestBytes(t *testing.T) {
	got, err := Bytes("e282acF0")
	if err != nil || !bytes.Equal(got, []byte{0xE2, 0x82, 0xAC, 0xF0}) {
		t.Errorf("Bytes = % X, %v", got, err)
	}

	tests := []struct {
		input  string
		offset int
	}{
		{"e28", 2},
		{"e2zz", 2},
		{"g0", 0},
	}
	for _, tt := range tests {
		_, err := Bytes(tt.input)
		var e *cerrors.Error
		if !errors.As(err, &e) || e.Kind != cerrors.KindInvalidInput || e.Phase != cerrors.PhaseParse || e.Offset != tt.offset {
			t.Errorf("Bytes(%q) err = %v", tt.input, err)
		}
	}

	if got, err := Bytes(""); err != nil || len(got) != 0 {
		t.Errorf("Bytes(\"\") = %v, %v", got, err)
	}
}

func TestUnits(t *testing.T) {
	got, err := Units("d83dde000041", 4)
	if err != nil || !slices.Equal(got, []uint32{0xD83D, 0xDE00, 0x41}) {
		t.Errorf("Units(4) = %X, %v", got, err)
	}

	got, err = Units("0001F6007FFFFFFF", 8)
	if err != nil || !slices.Equal(got, []uint32{0x1F600, 0x7FFFFFFF}) {
		t.Errorf("Units(8) = %X, %v", got, err)
	}

	tests := []struct {
		input  string
		width  int
		offset int
	}{
		{"00410", 4, 4},
		{"0041-042", 4, 4},
		{"+041", 4, 0},
	}
	for _, tt := range tests {
		_, err := Units(tt.input, tt.width)
		var e *cerrors.Error
		if !errors.As(err, &e) || e.Kind != cerrors.KindInvalidInput || e.Offset != tt.offset {
			t.Errorf("Units(%q, %d) err = %v", tt.input, tt.width, err)
		}
	}

	if _, err := Units("00", 0); cerrors.KindOf(err) != cerrors.KindUnsupported {
		t.Errorf("width 0 err = %v", err)
	}
}

func TestFormatter(t *testing.T) {
	lower, upper := Formatter{}, Formatter{Upper: true}

	if got := lower.Bytes([]byte{0xE2, 0x82, 0xAC}); got != "e282ac" {
		t.Errorf("Bytes = %s", got)
	}
	if got := upper.Bytes([]byte{0xE2, 0x82, 0xAC}); got != "E282AC" {
		t.Errorf("upper Bytes = %s", got)
	}
	if got := lower.Unit(0x41); got != "0041" {
		t.Errorf("Unit = %s", got)
	}
	if got := upper.Unit(0x1F600); got != "1F600" {
		t.Errorf("upper Unit = %s", got)
	}
	if got := lower.Units([]uint32{0xD83D, 0xDE00}); got != "d83d de00" {
		t.Errorf("Units = %s", got)
	}
}
