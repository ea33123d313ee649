package blake2b

import (
	"encoding/binary"

	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/framer"
	"github.com/zeebo/xhash/internal/secret"
)

// state is the chaining value with its byte counter and finalization flags.
type state struct {
	h [8]uint64
	t [2]uint64
	f [2]uint64
}

func (s *state) add(n uint64) {
	s.t[0] += n
	if s.t[0] < n {
		s.t[1]++
	}
}

// Compress consumes a full block that is known not to be the last one.
func (s *state) Compress(block []byte) {
	s.add(BlockSize)
	compress(&s.h, &s.t, &s.f, block)
}

// Digest is an incremental BLAKE2b hash. It implements xhash.Hash.
type Digest struct {
	s    state
	init [8]uint64
	fr   framer.Framer[*state]
	key  *secret.Key
	size int
	last bool
}

func newDigest(params, key []byte, size int, last bool) *Digest {
	d := &Digest{
		fr:   framer.New[*state](BlockSize, true, 0),
		key:  secret.New(key),
		size: size,
		last: last,
	}
	d.setParams(params)
	return d
}

// setParams derives the initial chaining value from a parameter block and
// resets the digest.
func (d *Digest) setParams(params []byte) {
	for i := range d.init {
		d.init[i] = consts.IV64[i] ^ binary.LittleEndian.Uint64(params[8*i:])
	}
	d.Reset()
}

// Reset restores the digest to its initial state, re-absorbing the key.
func (d *Digest) Reset() {
	d.s = state{h: d.init}
	d.fr.Reset()

	if d.key.Len() > 0 {
		var block [BlockSize]byte
		copy(block[:], d.key.Bytes())
		_ = d.fr.Write(&d.s, block[:])
		secret.Zero(block[:])
	}
}

// Size returns the digest size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the block size in bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p. It only fails once the 2^64 byte counter would overflow.
func (d *Digest) Write(p []byte) (int, error) {
	if err := d.fr.Write(&d.s, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (d *Digest) WriteString(p string) (int, error) { return d.Write([]byte(p)) }

// Sum appends the digest to b without changing the state.
func (d *Digest) Sum(b []byte) []byte {
	var out [Size]byte
	d.finalize(&out)
	return append(b, out[:d.size]...)
}

// Finalize returns the digest and resets the hash.
func (d *Digest) Finalize() []byte {
	sum := d.Sum(nil)
	d.Reset()
	return sum
}

// Clone returns an independent copy of the digest.
func (d *Digest) Clone() *Digest {
	c := *d
	c.fr = d.fr.Clone()
	c.key = d.key.Clone()
	return &c
}

// Wipe zeroes the key and all buffered input. The digest must not be used
// afterwards.
func (d *Digest) Wipe() {
	d.key.Wipe()
	d.fr.Reset()
	d.s = state{}
}

// finalize compresses the pending block with the finalization flags into a
// copy of the state and writes the full 64-byte chaining value to out.
func (d *Digest) finalize(out *[Size]byte) {
	s := d.s
	pending := d.fr.Pending()

	var block [BlockSize]byte
	copy(block[:], pending)

	s.add(uint64(len(pending)))
	s.f[0] = ^uint64(0)
	if d.last {
		s.f[1] = ^uint64(0)
	}
	compress(&s.h, &s.t, &s.f, block[:])
	secret.Zero(block[:])

	for i, v := range s.h {
		binary.LittleEndian.PutUint64(out[8*i:], v)
	}
}
