package keccak

import (
	"math"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/internal/squeeze"
)

const (
	rate128 = 168
	rate256 = 136
)

// Shake is a SHAKE or cSHAKE extendable-output function. Sum returns Size
// bytes from the start of the output stream: 32 for the 128-bit variants and
// 64 for the 256-bit variants unless SetOutputSize changed it.
type Shake struct {
	s      sponge
	prefix []byte
	size   int
	limit  squeeze.Limit
}

func newShake(rate, size int, n, s []byte) *Shake {
	x := &Shake{size: size, limit: squeeze.New(math.MaxUint64)}
	if len(n) == 0 && len(s) == 0 {
		x.s = newSponge(rate, dsShake)
	} else {
		x.s = newSponge(rate, dsCShake)
		x.prefix = bytepad(append(encodeString(n), encodeString(s)...), rate)
	}
	x.Reset()
	return x
}

// NewShake128 returns SHAKE128.
func NewShake128() *Shake { return newShake(rate128, 32, nil, nil) }

// NewShake256 returns SHAKE256.
func NewShake256() *Shake { return newShake(rate256, 64, nil, nil) }

// NewCShake128 returns cSHAKE128 with function name n and customization s.
// With both empty it is SHAKE128.
func NewCShake128(n, s []byte) *Shake { return newShake(rate128, 32, n, s) }

// NewCShake256 returns cSHAKE256 with function name n and customization s.
// With both empty it is SHAKE256.
func NewCShake256(n, s []byte) *Shake { return newShake(rate256, 64, n, s) }

// ShakeSum128 fills out with the SHAKE128 output for data.
func ShakeSum128(out, data []byte) {
	x := NewShake128()
	_, _ = x.Write(data)
	_, _ = x.Read(out)
}

// ShakeSum256 fills out with the SHAKE256 output for data.
func ShakeSum256(out, data []byte) {
	x := NewShake256()
	_, _ = x.Write(data)
	_, _ = x.Read(out)
}

// Size returns the number of bytes Sum produces.
func (x *Shake) Size() int { return x.size }

// BlockSize returns the sponge rate in bytes.
func (x *Shake) BlockSize() int { return x.s.rate }

// Write absorbs p. It fails once output has been read.
func (x *Shake) Write(p []byte) (int, error) {
	if x.s.squeezing {
		return 0, xhash.ErrWriteAfterRead
	}
	if err := x.s.absorb(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetOutputSize bounds the total output to bits/8 bytes and makes Sum
// return that many bytes. It must be called before the first Read.
func (x *Shake) SetOutputSize(bits uint64) error {
	if x.s.squeezing {
		return xhash.ErrReadStarted
	}
	if err := x.limit.SetBits(bits, math.MaxInt); err != nil {
		return err
	}
	x.size = int(bits / 8)
	return nil
}

// Read squeezes the next len(p) bytes of output.
func (x *Shake) Read(p []byte) (int, error) {
	if err := x.limit.Take(len(p)); err != nil {
		return 0, err
	}
	if !x.s.squeezing {
		x.s.pad()
	}
	x.s.squeeze(p)
	return len(p), nil
}

// Sum appends Size bytes from the start of the output to b without changing
// the state.
func (x *Shake) Sum(b []byte) []byte {
	out := make([]byte, x.size)
	x.s.sum(out)
	return append(b, out...)
}

// Finalize returns Size bytes of output and resets x.
func (x *Shake) Finalize() []byte {
	out := x.Sum(nil)
	x.Reset()
	return out
}

// Reset returns x to its initial state, keeping the output size.
func (x *Shake) Reset() {
	x.s.reset()
	x.limit.Rewind()
	if x.prefix != nil {
		_ = x.s.absorb(x.prefix)
	}
}

// Clone returns an independent copy, including the read position.
func (x *Shake) Clone() *Shake {
	c := *x
	c.s = x.s.clone()
	return &c
}

var (
	_ xhash.Hash = (*Shake)(nil)
	_ xhash.XOF  = (*Shake)(nil)
)
