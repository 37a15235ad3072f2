package handler

import (
	"bytes"
	"sync"
)

// bufferPool reuses bytes.Buffer instances across JSON encodes. Month
// overview responses carry a full month of per-day records, so buffers start
// at 1KB.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// getBuffer retrieves a buffer from the pool
func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer and returns it to the pool
func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
