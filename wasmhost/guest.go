package wasmhost

// GuestModule is a minimal guest that imports decode_one and encode_one and
// re-exports them as "decode" and "encode" over its own exported "memory".
// It lets a host exercise the module end to end without a toolchain.
var GuestModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,

	// type: (i32 i32) -> i64, (i32 i32 i32) -> i32
	0x01, 0x0e, 0x02,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7e,
	0x60, 0x03, 0x7f, 0x7f, 0x7f, 0x01, 0x7f,

	// import: utfcodec.decode_one, utfcodec.encode_one
	0x02, 0x2d, 0x02,
	0x08, 'u', 't', 'f', 'c', 'o', 'd', 'e', 'c',
	0x0a, 'd', 'e', 'c', 'o', 'd', 'e', '_', 'o', 'n', 'e', 0x00, 0x00,
	0x08, 'u', 't', 'f', 'c', 'o', 'd', 'e', 'c',
	0x0a, 'e', 'n', 'c', 'o', 'd', 'e', '_', 'o', 'n', 'e', 0x00, 0x01,

	// function
	0x03, 0x03, 0x02, 0x00, 0x01,

	// memory: one page
	0x05, 0x03, 0x01, 0x00, 0x01,

	// export: memory, decode, encode
	0x07, 0x1c, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x06, 'd', 'e', 'c', 'o', 'd', 'e', 0x00, 0x02,
	0x06, 'e', 'n', 'c', 'o', 'd', 'e', 0x00, 0x03,

	// code: forward every parameter to the import
	0x0a, 0x15, 0x02,
	0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x00, 0x0b,
	0x0a, 0x00, 0x20, 0x00, 0x20, 0x01, 0x20, 0x02, 0x10, 0x01, 0x0b,
}
