package blake3

import (
	"fmt"
	"io"

	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/utils"
)

// Output captures the root node of a Hasher allowing reading and seeking
// through the output stream. Every byte is a pure function of its position.
type Output struct {
	n    node
	buf  [consts.BlockLen]byte
	bufn int // unread bytes at the end of buf
}

func newOutput(n node) *Output { return &Output{n: n} }

// Read reads data from the hasher into p. It always fills the entire buffer
// and never errors.
func (out *Output) Read(p []byte) (n int, err error) {
	n = len(p)

	if out.bufn > 0 {
		k := copy(p, out.buf[consts.BlockLen-out.bufn:])
		out.bufn -= k
		p = p[k:]
	}

	for len(p) >= consts.BlockLen {
		out.fillBuf()
		copy(p, out.buf[:])
		out.bufn = 0
		p = p[consts.BlockLen:]
	}

	if len(p) > 0 {
		out.fillBuf()
		out.bufn -= copy(p, out.buf[:])
	}

	return n, nil
}

// Seek sets the position to the provided location. Only SeekStart and
// SeekCurrent are allowed.
func (out *Output) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported")
	case io.SeekCurrent:
		offset += int64(out.position())
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("seek before start")
	}
	out.setPosition(uint64(offset))
	return offset, nil
}

// position is the offset of the next byte Read returns.
func (out *Output) position() uint64 {
	return consts.BlockLen*out.n.counter - uint64(out.bufn)
}

func (out *Output) setPosition(pos uint64) {
	out.n.counter = pos / consts.BlockLen
	out.bufn = 0
	if rem := int(pos % consts.BlockLen); rem > 0 {
		out.fillBuf()
		out.bufn -= rem
	}
}

// fillBuf computes the output block at the current counter.
func (out *Output) fillBuf() {
	var words [16]uint32
	compress(&out.n.cv, &out.n.block, out.n.counter, out.n.blen, out.n.flags, &words)
	utils.WordsToBytes(&words, out.buf[:])
	out.n.counter++
	out.bufn = consts.BlockLen
}
