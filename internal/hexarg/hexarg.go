// Package hexarg parses and formats the hex strings the utf8 command takes
// and prints.
package hexarg

import (
	"encoding/hex"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/wippyai/utfcodec/errors"
)

// Bytes parses s as consecutive pairs of hex digits.
func Bytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Offset(len(s) - 1).
			Value(len(s)).
			Detail("length %d is not a multiple of 2", len(s)).
			Build()
	}
	p, err := hex.DecodeString(s)
	if err != nil {
		var bad hex.InvalidByteError
		if stderrors.As(err, &bad) {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Offset(strings.IndexByte(s, byte(bad))).
				Value(byte(bad)).
				Detail("%s is not a hex digit", errors.PrintableByte(byte(bad))).
				Build()
		}
		return nil, errors.ParseFailed("hex bytes", err)
	}
	return p, nil
}

// Units parses s as consecutive code units of width hex digits each.
func Units(s string, width int) ([]uint32, error) {
	if width <= 0 || width > 8 {
		return nil, errors.Unsupported(errors.PhaseParse, "unit width "+strconv.Itoa(width))
	}
	if len(s)%width != 0 {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Offset(len(s) - len(s)%width).
			Value(len(s)).
			Detail("length %d is not a multiple of %d", len(s), width).
			Build()
	}

	out := make([]uint32, 0, len(s)/width)
	for off := 0; off < len(s); off += width {
		chunk := s[off : off+width]
		if i := strings.IndexFunc(chunk, notHex); i >= 0 {
			b := chunk[i]
			return out, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Offset(off + i).
				Value(b).
				Detail("%s is not a hex digit", errors.PrintableByte(b)).
				Build()
		}
		u, err := strconv.ParseUint(chunk, 16, 32)
		if err != nil {
			return out, errors.ParseFailed("code unit "+chunk, err)
		}
		out = append(out, uint32(u))
	}
	return out, nil
}

func notHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return false
	}
	return true
}

// Formatter renders bytes and code units as hex.
type Formatter struct {
	Upper bool
}

// Bytes renders p as two digits per byte with no separator.
func (f Formatter) Bytes(p []byte) string {
	s := hex.EncodeToString(p)
	if f.Upper {
		return strings.ToUpper(s)
	}
	return s
}

// Unit renders u with at least four digits.
func (f Formatter) Unit(u uint32) string {
	s := strconv.FormatUint(uint64(u), 16)
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	if f.Upper {
		return strings.ToUpper(s)
	}
	return s
}

// Units renders each unit with Unit, separated by a space.
func (f Formatter) Units(units []uint32) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = f.Unit(u)
	}
	return strings.Join(parts, " ")
}
