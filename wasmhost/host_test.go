package wasmhost

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
)

// memoryGuest is a module that only exports one page of memory as "memory".
var memoryGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func setup(t *testing.T, policy codepoint.Policy) (context.Context, *Host, api.Module, api.Module) {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	h := New(policy)
	hostMod, err := h.Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	guest, err := rt.InstantiateWithConfig(ctx, memoryGuest, wazero.NewModuleConfig().WithName("guest"))
	if err != nil {
		t.Fatalf("instantiate guest module: %v", err)
	}
	return ctx, h, hostMod, guest
}

func TestInstantiate_Exports(t *testing.T) {
	_, _, hostMod, _ := setup(t, codepoint.Strict)
	for _, name := range []string{"decode_one", "encode_one", "to_surrogates", "from_surrogates", "is_valid"} {
		if hostMod.ExportedFunction(name) == nil {
			t.Errorf("missing export %s", name)
		}
	}
}

func TestInstantiate_Twice(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := New(codepoint.Strict).Instantiate(ctx, rt); err != nil {
		t.Fatal(err)
	}
	_, err := New(codepoint.Strict).Instantiate(ctx, rt)
	if errors.KindOf(err) != errors.KindRegistration {
		t.Errorf("second Instantiate err = %v", err)
	}
}

func TestDecodeOne(t *testing.T) {
	ctx, h, _, guest := setup(t, codepoint.Strict)

	tests := []struct {
		name  string
		input []byte
		want  int64
	}{
		{"ascii", []byte("A"), 1<<32 | 0x41},
		{"euro", []byte{0xE2, 0x82, 0xAC, 0x21}, 3<<32 | 0x20AC},
		{"emoji", []byte{0xF0, 0x9F, 0x98, 0x80}, 4<<32 | 0x1F600},
		{"bad lead", []byte{0xFF}, int64(CodeInvalidLeadByte)},
		{"bad continuation", []byte{0xE2, 0x28, 0xA1}, int64(CodeInvalidContinuationByte)},
		{"truncated", []byte{0xE2, 0x82}, int64(CodeTruncatedSequence)},
		{"overlong", []byte{0xE0, 0x80, 0x80}, int64(CodeOverlongOrOutOfRange)},
		{"empty", nil, int64(CodeTruncatedSequence)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const ptr = 64
			if !guest.Memory().Write(ptr, tt.input) {
				t.Fatal("write failed")
			}
			stack := []uint64{api.EncodeU32(ptr), api.EncodeU32(uint32(len(tt.input)))}
			h.decodeOne(ctx, guest, stack)
			if got := int64(stack[0]); got != tt.want {
				t.Errorf("decode_one = %#x, want %#x", got, tt.want)
			}
		})
	}

	stack := []uint64{api.EncodeU32(65535), api.EncodeU32(4)}
	h.decodeOne(ctx, guest, stack)
	if int32(stack[0]) != CodeOutOfBounds {
		t.Errorf("out of bounds = %d", int64(stack[0]))
	}
}

func TestDecodeOne_Legacy(t *testing.T) {
	ctx, h, _, guest := setup(t, codepoint.Legacy)

	input := []byte{0xFD, 0xBF, 0xBF, 0xBF, 0xBF, 0xBF}
	guest.Memory().Write(0, input)
	stack := []uint64{0, api.EncodeU32(uint32(len(input)))}
	h.decodeOne(ctx, guest, stack)
	if want := uint64(6)<<32 | 0x7FFFFFFF; stack[0] != want {
		t.Errorf("decode_one = %#x, want %#x", stack[0], want)
	}
}

func TestEncodeOne(t *testing.T) {
	ctx, h, _, guest := setup(t, codepoint.Strict)

	stack := []uint64{api.EncodeU32(0x1F600), api.EncodeU32(100), api.EncodeU32(8)}
	h.encodeOne(ctx, guest, stack)
	if int32(stack[0]) != 4 {
		t.Fatalf("encode_one = %d", int32(stack[0]))
	}
	got, _ := guest.Memory().Read(100, 4)
	if string(got) != "\U0001F600" {
		t.Errorf("memory = % X", got)
	}

	tests := []struct {
		name  string
		stack []uint64
		want  int32
	}{
		{"surrogate", []uint64{api.EncodeU32(0xD800), 0, api.EncodeU32(8)}, CodeInvalidCodePoint},
		{"too large", []uint64{api.EncodeU32(0x110000), 0, api.EncodeU32(8)}, CodeInvalidCodePoint},
		{"short buffer", []uint64{api.EncodeU32(0x20AC), 0, api.EncodeU32(2)}, CodeShortBuffer},
		{"out of bounds", []uint64{api.EncodeU32(0x41), api.EncodeU32(65536), api.EncodeU32(8)}, CodeOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.encodeOne(ctx, guest, tt.stack)
			if got := int32(tt.stack[0]); got != tt.want {
				t.Errorf("encode_one = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPureFunctions(t *testing.T) {
	ctx, _, hostMod, _ := setup(t, codepoint.Strict)

	call := func(name string, params ...uint64) int32 {
		t.Helper()
		res, err := hostMod.ExportedFunction(name).Call(ctx, params...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return int32(res[0])
	}

	if got := call("to_surrogates", 0x1F600); uint32(got) != 0xD83DDE00 {
		t.Errorf("to_surrogates = %#x", uint32(got))
	}
	if got := call("to_surrogates", 0x41); got != CodeInvalidCodePoint {
		t.Errorf("to_surrogates(BMP) = %d", got)
	}
	if got := call("from_surrogates", 0xD83D, 0xDE00); got != 0x1F600 {
		t.Errorf("from_surrogates = %#x", got)
	}
	if got := call("from_surrogates", 0xDE00, 0xD83D); got != CodeInvalidSurrogate {
		t.Errorf("from_surrogates(swapped) = %d", got)
	}
	if got := call("from_surrogates", 0x1D83D, 0xDE00); got != CodeInvalidSurrogate {
		t.Errorf("from_surrogates(wide) = %d", got)
	}

	for cp, want := range map[uint64]int32{0x41: 1, 0xD800: 0, 0xFFFE: 0, 0x10FFFF: 1, 0x110000: 0} {
		if got := call("is_valid", cp); got != want {
			t.Errorf("is_valid(%#x) = %d, want %d", cp, got, want)
		}
	}

	// The host module has no memory of its own.
	if got := call("decode_one", 0, 1); got != CodeOutOfBounds {
		t.Errorf("decode_one without memory = %d", got)
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(errors.InvalidLeadByte(0, 0xFF)) != CodeInvalidLeadByte {
		t.Error("lead byte code")
	}
	if CodeOf(errors.ShortBuffer(errors.PhaseEncode, 4, 2)) != CodeShortBuffer {
		t.Error("short buffer code")
	}
	if CodeOf(errors.InvalidInput(errors.PhaseHost, "x")) != CodeInternal {
		t.Error("unmapped kind should be CodeInternal")
	}
	if CodeOf(nil) != CodeInternal {
		t.Error("nil error should be CodeInternal")
	}
}

func TestGuestModule_EndToEnd(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := New(codepoint.Strict).Instantiate(ctx, rt); err != nil {
		t.Fatal(err)
	}
	guest, err := rt.Instantiate(ctx, GuestModule)
	if err != nil {
		t.Fatalf("instantiate guest module: %v", err)
	}

	mem := guest.Memory()
	mem.Write(16, []byte("€!"))
	res, err := guest.ExportedFunction("decode").Call(ctx, 16, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint64(3)<<32 | 0x20AC; res[0] != want {
		t.Errorf("decode = %#x, want %#x", res[0], want)
	}

	res, err = guest.ExportedFunction("encode").Call(ctx, 0x1F600, 32, 8)
	if err != nil {
		t.Fatal(err)
	}
	if int32(res[0]) != 4 {
		t.Fatalf("encode = %d", int32(res[0]))
	}
	if got, _ := mem.Read(32, 4); string(got) != "\U0001F600" {
		t.Errorf("memory = % X", got)
	}

	res, err = guest.ExportedFunction("encode").Call(ctx, 0xD800, 32, 8)
	if err != nil || int32(res[0]) != CodeInvalidCodePoint {
		t.Errorf("encode(surrogate) = %v, %v", res, err)
	}
}
