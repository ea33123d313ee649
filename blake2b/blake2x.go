package blake2b

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/internal/squeeze"
)

const (
	// OutputLengthUnknown requests an XOF whose length is not fixed up
	// front. Reads are then capped at MaxOutputLengthUnknown bytes.
	OutputLengthUnknown = 0

	// MaxOutputLength is the largest output length that can be declared.
	MaxOutputLength = math.MaxUint32 - 1

	// MaxOutputLengthUnknown bounds the output of an XOF created with
	// OutputLengthUnknown.
	MaxOutputLengthUnknown = (1 << 32) * Size

	lengthUnknown = math.MaxUint32
)

// XOF is the BLAKE2Xb extendable-output function. It implements xhash.XOF
// and hash.Hash, where Sum squeezes Size bytes from a copy of the state.
type XOF struct {
	root   *Digest
	out    *Digest
	cfg    Config
	tree   Tree
	length uint32
	limit  squeeze.Limit

	sum   [Size]byte
	block [Size]byte
	node  [ParamSize]byte
	pos   int
	blen  int
	index uint32

	written bool
	reading bool
}

// NewXOF returns a BLAKE2Xb XOF emitting size bytes, or an unbounded stream
// when size is OutputLengthUnknown. cfg may be nil; its Size field is
// ignored, as the root always produces a 64-byte digest.
func NewXOF(size uint32, cfg *Config) (*XOF, error) {
	if size == lengthUnknown {
		return nil, xhash.ErrOutputSize
	}

	x := &XOF{}
	if cfg != nil {
		x.cfg = *cfg
		if cfg.Tree != nil {
			x.tree = *cfg.Tree
			x.cfg.Tree = &x.tree
		}
	}
	x.cfg.Size = Size

	if err := x.init(size); err != nil {
		return nil, err
	}
	return x, nil
}

func (x *XOF) init(size uint32) error {
	length, max := size, uint64(size)
	if size == OutputLengthUnknown {
		length, max = lengthUnknown, MaxOutputLengthUnknown
	}

	params, err := x.cfg.params(length)
	if err != nil {
		return err
	}

	if x.root == nil {
		x.root = newDigest(params, x.cfg.Key, Size, x.tree.IsLastNode)
	} else {
		x.root.setParams(params)
	}

	x.length = length
	x.limit = squeeze.New(max)

	x.node = [ParamSize]byte{}
	x.node[4] = Size
	binary.LittleEndian.PutUint32(x.node[12:], length)
	x.node[17] = Size
	copy(x.node[32:], params[32:])

	x.reset()
	return nil
}

func (x *XOF) reset() {
	x.limit.Rewind()
	x.pos, x.blen, x.index = 0, 0, 0
	x.written, x.reading = false, false
}

// Size returns the declared output length, or Size when it is unknown.
func (x *XOF) Size() int {
	if x.length == lengthUnknown {
		return Size
	}
	return int(x.length)
}

// BlockSize returns the block size of the root hash.
func (x *XOF) BlockSize() int { return BlockSize }

// Write absorbs p. It fails once output has been read.
func (x *XOF) Write(p []byte) (int, error) {
	if x.reading {
		return 0, xhash.ErrWriteAfterRead
	}
	x.written = x.written || len(p) > 0
	return x.root.Write(p)
}

// WriteString is Write for strings.
func (x *XOF) WriteString(p string) (int, error) { return x.Write([]byte(p)) }

// SetOutputSize declares the output length in bits. The length is part of
// the root parameters, so it must be set before any input is written.
func (x *XOF) SetOutputSize(bits uint64) error {
	if x.reading {
		return xhash.ErrReadStarted
	}
	if x.written {
		return xhash.ErrWriteAfterRead
	}
	if bits == 0 || bits%8 != 0 || bits/8 > MaxOutputLength {
		return xhash.ErrOutputSize
	}
	return x.init(uint32(bits / 8))
}

// Read squeezes len(p) bytes. A read that would pass the output length
// fails without producing anything.
func (x *XOF) Read(p []byte) (int, error) {
	if err := x.limit.Take(len(p)); err != nil {
		return 0, err
	}
	if !x.reading {
		x.root.finalize(&x.sum)
		x.reading = true
	}

	n := len(p)
	for len(p) > 0 {
		if x.pos == x.blen {
			x.fill()
		}
		k := copy(p, x.block[x.pos:x.blen])
		x.pos += k
		p = p[k:]
	}
	return n, nil
}

// fill computes the next output node from the root digest.
func (x *XOF) fill() {
	size := uint64(Size)
	total := x.limit.Max()
	if rem := total - uint64(x.index)*Size; rem < size {
		size = rem
	}

	x.node[0] = byte(size)
	binary.LittleEndian.PutUint32(x.node[8:], x.index)

	if x.out == nil {
		x.out = newDigest(x.node[:], nil, int(size), false)
	} else {
		x.out.size = int(size)
		x.out.setParams(x.node[:])
	}
	_, _ = x.out.Write(x.sum[:])
	x.out.finalize(&x.block)

	x.index++
	x.pos, x.blen = 0, int(size)
}

// Sum appends Size() bytes of output to b, leaving x unchanged.
func (x *XOF) Sum(b []byte) []byte {
	c := x.Clone()
	c.reset()

	out := make([]byte, c.Size())
	_, _ = c.Read(out)
	return append(b, out...)
}

// Finalize returns Size() bytes of output and resets the XOF.
func (x *XOF) Finalize() []byte {
	sum := x.Sum(nil)
	x.Reset()
	return sum
}

// Reset returns the XOF to the state NewXOF produced, keeping the output
// length.
func (x *XOF) Reset() {
	x.root.Reset()
	x.reset()
}

// Clone returns an independent copy of the XOF, including its read position.
func (x *XOF) Clone() *XOF {
	c := *x
	c.root = x.root.Clone()
	c.out = nil
	if x.cfg.Tree != nil {
		c.cfg.Tree = &c.tree
	}
	return &c
}

// Wipe zeroes the key and buffered state. The XOF must not be used
// afterwards.
func (x *XOF) Wipe() {
	x.root.Wipe()
	x.sum = [Size]byte{}
	x.block = [Size]byte{}
}

var _ xhash.XOF = (*XOF)(nil)
