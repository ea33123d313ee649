package keccak

import (
	"math"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/internal/secret"
)

var kmacName = []byte("KMAC")

// KMAC is the NIST SP 800-185 keyed hash. A fixed-length KMAC binds its
// output length into the result; a KMACXOF does not, and can be read
// indefinitely.
type KMAC struct {
	x      *Shake
	prefix *secret.Key
	size   int
	xof    bool
	ended  bool
}

func newKMAC(rate, size int, key, s []byte, xof bool) *KMAC {
	padded := bytepadKey(key, rate)
	defer secret.Zero(padded)

	k := &KMAC{
		x:      newShake(rate, size, kmacName, s),
		prefix: secret.New(padded),
		size:   size,
		xof:    xof,
	}
	k.Reset()
	return k
}

// NewKMAC128 returns KMAC128 with the given key, customization s and output
// size in bytes.
func NewKMAC128(key, s []byte, size int) (*KMAC, error) {
	if size < 1 {
		return nil, xhash.ErrOutputSize
	}
	return newKMAC(rate128, size, key, s, false), nil
}

// NewKMAC256 returns KMAC256 with the given key, customization s and output
// size in bytes.
func NewKMAC256(key, s []byte, size int) (*KMAC, error) {
	if size < 1 {
		return nil, xhash.ErrOutputSize
	}
	return newKMAC(rate256, size, key, s, false), nil
}

// NewKMACXOF128 returns KMACXOF128. Sum returns 32 bytes.
func NewKMACXOF128(key, s []byte) *KMAC { return newKMAC(rate128, 32, key, s, true) }

// NewKMACXOF256 returns KMACXOF256. Sum returns 64 bytes.
func NewKMACXOF256(key, s []byte) *KMAC { return newKMAC(rate256, 64, key, s, true) }

// Size returns the output length in bytes.
func (k *KMAC) Size() int { return k.size }

// BlockSize returns the sponge rate in bytes.
func (k *KMAC) BlockSize() int { return k.x.BlockSize() }

// Write absorbs p. It fails once output has been read.
func (k *KMAC) Write(p []byte) (int, error) {
	if k.ended {
		return 0, xhash.ErrWriteAfterRead
	}
	return k.x.Write(p)
}

// lengthSuffix is right_encode of the output length in bits, or of zero for
// the XOF variant.
func (k *KMAC) lengthSuffix() []byte {
	if k.xof {
		return rightEncode(0)
	}
	return rightEncode(uint64(k.size) * 8)
}

// SetOutputSize changes the output length. For a fixed-length KMAC the
// length is part of the result; for KMACXOF it only bounds Read.
func (k *KMAC) SetOutputSize(bits uint64) error {
	if k.ended {
		return xhash.ErrReadStarted
	}
	if err := k.x.SetOutputSize(bits); err != nil {
		return err
	}
	k.size = int(bits / 8)
	return nil
}

// Read squeezes output. A fixed-length KMAC yields at most Size bytes.
func (k *KMAC) Read(p []byte) (int, error) {
	if !k.ended {
		if !k.xof {
			if err := k.x.limit.SetBits(uint64(k.size)*8, math.MaxInt); err != nil {
				return 0, err
			}
		}
		if _, err := k.x.Write(k.lengthSuffix()); err != nil {
			return 0, err
		}
		k.ended = true
	}
	return k.x.Read(p)
}

// Sum appends Size bytes of output to b without changing the state.
func (k *KMAC) Sum(b []byte) []byte {
	c := k.x.Clone()
	if !k.ended {
		_, _ = c.Write(k.lengthSuffix())
	}
	out := make([]byte, k.size)
	c.s.sum(out)
	return append(b, out...)
}

// Finalize returns Size bytes of output and resets k.
func (k *KMAC) Finalize() []byte {
	out := k.Sum(nil)
	k.Reset()
	return out
}

// Reset returns k to its keyed initial state.
func (k *KMAC) Reset() {
	k.x.Reset()
	k.ended = false
	_, _ = k.x.Write(k.prefix.Bytes())
}

// Clone returns an independent copy.
func (k *KMAC) Clone() *KMAC {
	c := *k
	c.x = k.x.Clone()
	c.prefix = k.prefix.Clone()
	return &c
}

// Wipe zeroes the key and the sponge. The KMAC must not be used afterwards.
func (k *KMAC) Wipe() {
	k.prefix.Wipe()
	k.x.s.reset()
}

var (
	_ xhash.Hash = (*KMAC)(nil)
	_ xhash.XOF  = (*KMAC)(nil)
)
