package transcoder

import "sync"

const (
	poolMaxCap  = 64 << 10
	poolInitCap = 256
)

// scratch buffers for assembling UTF-8 output
var bytePool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

func getBuf() *[]byte {
	return bytePool.Get().(*[]byte)
}

func putBuf(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	bytePool.Put(buf)
}
