package utfcodec

import (
	"encoding/binary"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/transcoder"
)

// ToUTF16 converts strict UTF-8 to UTF-16 without a byte-order mark.
func ToUTF16(p []byte, order binary.ByteOrder) ([]byte, error) {
	return convert(p, transcoder.UTF16, order, true)
}

// FromUTF16 converts UTF-16 to UTF-8. A leading byte-order mark overrides
// order and is not copied to the output.
func FromUTF16(p []byte, order binary.ByteOrder) ([]byte, error) {
	return convert(p, transcoder.UTF16, order, false)
}

// ToUTF32 converts strict UTF-8 to UTF-32 without a byte-order mark.
func ToUTF32(p []byte, order binary.ByteOrder) ([]byte, error) {
	return convert(p, transcoder.UTF32, order, true)
}

// FromUTF32 converts UTF-32 to UTF-8. A leading byte-order mark overrides
// order and is not copied to the output.
func FromUTF32(p []byte, order binary.ByteOrder) ([]byte, error) {
	return convert(p, transcoder.UTF32, order, false)
}

func convert(p []byte, form transcoder.Form, order binary.ByteOrder, toWide bool) ([]byte, error) {
	o, err := orderOf(order)
	if err != nil {
		return nil, err
	}
	t, err := transcoder.New(transcoder.Options{Form: form, Order: o, Policy: codepoint.Strict})
	if err != nil {
		return nil, err
	}
	if toWide {
		return t.ToWide(p)
	}
	return t.FromWide(p)
}

func orderOf(order binary.ByteOrder) (transcoder.Order, error) {
	switch order {
	case binary.BigEndian:
		return transcoder.BigEndian, nil
	case binary.LittleEndian:
		return transcoder.LittleEndian, nil
	}
	return 0, errors.InvalidSetting("order", order, "binary.BigEndian", "binary.LittleEndian")
}
