// Package wasmhost exposes the codec to WebAssembly guests as a wazero host
// module named "utfcodec".
//
// Functions, in core wasm types:
//
//	decode_one(ptr, len i32) i64        consumed<<32 | code point, or a negative code
//	encode_one(cp, out, cap i32) i32    bytes written at out, or a negative code
//	to_surrogates(cp i32) i32           high<<16 | low, or a negative code
//	from_surrogates(high, low i32) i32  code point, or a negative code
//	is_valid(cp i32) i32                1 when the policy accepts cp, else 0
//
// decode_one and encode_one access the calling module's exported memory.
package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/errors"
	"github.com/wippyai/utfcodec/utf8"
)

// ModuleName is the import module name guests use.
const ModuleName = "utfcodec"

// Result codes returned to guests in place of a value.
const (
	CodeInvalidLeadByte         int32 = -1
	CodeInvalidContinuationByte int32 = -2
	CodeTruncatedSequence       int32 = -3
	CodeOverlongOrOutOfRange    int32 = -4
	CodeInvalidCodePoint        int32 = -5
	CodeInvalidSurrogate        int32 = -6
	CodeShortBuffer             int32 = -7
	CodeOutOfBounds             int32 = -8
	CodeInternal                int32 = -9
)

var kindCodes = map[errors.Kind]int32{
	errors.KindInvalidLeadByte:         CodeInvalidLeadByte,
	errors.KindInvalidContinuationByte: CodeInvalidContinuationByte,
	errors.KindTruncatedSequence:       CodeTruncatedSequence,
	errors.KindOverlongOrOutOfRange:    CodeOverlongOrOutOfRange,
	errors.KindInvalidCodePoint:        CodeInvalidCodePoint,
	errors.KindInvalidSurrogate:        CodeInvalidSurrogate,
	errors.KindShortBuffer:             CodeShortBuffer,
}

// CodeOf maps an error to the code a guest sees. Kinds without a code of
// their own map to CodeInternal.
func CodeOf(err error) int32 {
	if code, ok := kindCodes[errors.KindOf(err)]; ok {
		return code
	}
	return CodeInternal
}

// Host implements the utfcodec host module.
type Host struct {
	codec utf8.Codec
}

// New returns a Host validating under policy.
func New(policy codepoint.Policy) *Host {
	return &Host{codec: utf8.New(policy)}
}

func (h *Host) Namespace() string {
	return ModuleName
}

// Policy returns the validation policy of the host.
func (h *Host) Policy() codepoint.Policy {
	return h.codec.Policy
}

type function struct {
	name    string
	fn      api.GoModuleFunc
	params  []string
	types   []api.ValueType
	results []api.ValueType
}

func (h *Host) functions() []function {
	i32, i64 := api.ValueTypeI32, api.ValueTypeI64
	return []function{
		{"decode_one", h.decodeOne, []string{"ptr", "len"}, []api.ValueType{i32, i32}, []api.ValueType{i64}},
		{"encode_one", h.encodeOne, []string{"cp", "out", "cap"}, []api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
		{"to_surrogates", h.toSurrogates, []string{"cp"}, []api.ValueType{i32}, []api.ValueType{i32}},
		{"from_surrogates", h.fromSurrogates, []string{"high", "low"}, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"is_valid", h.isValid, []string{"cp"}, []api.ValueType{i32}, []api.ValueType{i32}},
	}
}

// Instantiate registers the host module in r. It fails if a module with the
// same name is already instantiated.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	if r.Module(ModuleName) != nil {
		return nil, errors.Registration(ModuleName, "", fmt.Errorf("module already instantiated"))
	}

	builder := r.NewHostModuleBuilder(ModuleName)
	funcs := h.functions()
	for _, f := range funcs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.types, f.results).
			WithParameterNames(f.params...).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Instantiation(ModuleName, err)
	}
	Logger().Debug("host module instantiated",
		zap.String("module", ModuleName),
		zap.Int("functions", len(funcs)),
		zap.Stringer("policy", h.codec.Policy))
	return mod, nil
}

func (h *Host) decodeOne(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, length := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])

	mem := mod.Memory()
	if mem == nil {
		stack[0] = api.EncodeI64(int64(CodeOutOfBounds))
		return
	}
	p, ok := mem.Read(ptr, length)
	if !ok {
		stack[0] = api.EncodeI64(int64(CodeOutOfBounds))
		return
	}

	cp, n, err := h.codec.Decode(p, 0)
	if err != nil {
		Logger().Debug("decode_one rejected input", zap.Uint32("ptr", ptr), zap.Error(err))
		stack[0] = api.EncodeI64(int64(CodeOf(err)))
		return
	}
	stack[0] = uint64(n)<<32 | uint64(cp)
}

func (h *Host) encodeOne(ctx context.Context, mod api.Module, stack []uint64) {
	cp := codepoint.CodePoint(api.DecodeU32(stack[0]))
	out, capacity := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])

	var buf [utf8.UTFMax]byte
	n, err := h.codec.EncodeInto(buf[:], cp)
	switch {
	case err != nil:
		Logger().Debug("encode_one rejected code point", zap.Stringer("cp", cp), zap.Error(err))
		stack[0] = api.EncodeI32(CodeOf(err))
		return
	case uint32(n) > capacity:
		stack[0] = api.EncodeI32(CodeShortBuffer)
		return
	}

	mem := mod.Memory()
	if mem == nil || !mem.Write(out, buf[:n]) {
		stack[0] = api.EncodeI32(CodeOutOfBounds)
		return
	}
	stack[0] = api.EncodeI32(int32(n))
}

func (h *Host) toSurrogates(ctx context.Context, mod api.Module, stack []uint64) {
	high, low, ok := codepoint.ToSurrogates(codepoint.CodePoint(api.DecodeU32(stack[0])))
	if !ok {
		stack[0] = api.EncodeI32(CodeInvalidCodePoint)
		return
	}
	stack[0] = api.EncodeU32(uint32(high)<<16 | uint32(low))
}

func (h *Host) fromSurrogates(ctx context.Context, mod api.Module, stack []uint64) {
	high, low := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	if high > 0xFFFF || low > 0xFFFF {
		stack[0] = api.EncodeI32(CodeInvalidSurrogate)
		return
	}
	cp, ok := codepoint.FromSurrogates(uint16(high), uint16(low))
	if !ok {
		stack[0] = api.EncodeI32(CodeInvalidSurrogate)
		return
	}
	stack[0] = api.EncodeU32(uint32(cp))
}

func (h *Host) isValid(ctx context.Context, mod api.Module, stack []uint64) {
	var valid uint32
	if h.codec.Policy.Valid(codepoint.CodePoint(api.DecodeU32(stack[0]))) {
		valid = 1
	}
	stack[0] = api.EncodeU32(valid)
}
