// Package framer buffers arbitrary writes into fixed-size blocks for a
// compression function.
package framer

import (
	"math"

	"github.com/zeebo/xhash"
)

// Compressor consumes one full block. The block may alias caller memory and
// must not be retained.
type Compressor interface {
	Compress(block []byte)
}

// Framer accumulates input into blocks of a fixed size.
//
// In lazy mode a full block is only handed to the compressor once more input
// arrives, so the final block of a message is always left pending for the
// caller's finalization (BLAKE2 and BLAKE3 need that block to carry
// finalization flags). In eager mode full blocks are compressed at once.
type Framer[C Compressor] struct {
	buf   []byte
	n     int
	total uint64
	max   uint64
	lazy  bool
}

// New returns a Framer for blocks of size bytes that accepts at most max
// bytes in total. A max of zero means no limit other than the uint64 range.
func New[C Compressor](size int, lazy bool, max uint64) Framer[C] {
	if max == 0 {
		max = math.MaxUint64
	}
	return Framer[C]{
		buf:  make([]byte, size),
		max:  max,
		lazy: lazy,
	}
}

// Write feeds p through c. It fails without consuming anything if the total
// would exceed the limit.
func (f *Framer[C]) Write(c C, p []byte) error {
	if uint64(len(p)) > f.max-f.total {
		return xhash.ErrMessageTooLong
	}
	f.total += uint64(len(p))

	size := len(f.buf)
	for len(p) > 0 {
		if f.n == size {
			f.flush(c)
		}

		if f.n == 0 && (len(p) > size || (!f.lazy && len(p) == size)) {
			c.Compress(p[:size])
			p = p[size:]
			continue
		}

		k := copy(f.buf[f.n:], p)
		f.n += k
		p = p[k:]

		if !f.lazy && f.n == size {
			f.flush(c)
		}
	}

	return nil
}

// flush compresses the buffered block and zeroes the buffer, which may have
// held key bytes.
func (f *Framer[C]) flush(c C) {
	c.Compress(f.buf)
	clear(f.buf)
	f.n = 0
}

// Pending returns the buffered bytes not yet compressed. In lazy mode it may
// be a full block.
func (f *Framer[C]) Pending() []byte { return f.buf[:f.n] }

// Total returns the number of bytes written since the last Reset.
func (f *Framer[C]) Total() uint64 { return f.total }

// BlockSize returns the block size.
func (f *Framer[C]) BlockSize() int { return len(f.buf) }

// Reset zeroes the buffer and the byte count.
func (f *Framer[C]) Reset() {
	clear(f.buf)
	f.n = 0
	f.total = 0
}

// Clone returns a copy that shares no memory with f.
func (f *Framer[C]) Clone() Framer[C] {
	out := *f
	out.buf = append([]byte(nil), f.buf...)
	return out
}
