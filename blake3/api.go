// Package blake3 implements the BLAKE3 hash function: chunks of sixteen
// 64-byte blocks, a binary Merkle tree of parent nodes, and a seekable
// extendable output.
package blake3

import (
	"math"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/squeeze"
)

// KeySize is the size of a BLAKE3 key.
const KeySize = 32

// Hasher is a hash.Hash for BLAKE3. It is also an xhash.XOF: the first Read
// finalizes it and later writes fail.
type Hasher struct {
	size  int
	h     hasher
	out   *Output
	limit squeeze.Limit
}

func newSized(size int, key [8]uint32, flags uint32) *Hasher {
	return &Hasher{
		size:  size,
		h:     newHasher(key, flags),
		limit: squeeze.New(math.MaxUint64),
	}
}

// New returns a new Hasher with the default output size (32 bytes).
func New() *Hasher {
	return newSized(32, consts.IV, 0)
}

// NewSized returns a new Hasher with the given output size.
func NewSized(size int) *Hasher {
	if size < 0 {
		panic("must specify non-negative size")
	}
	return newSized(size, consts.IV, 0)
}

// NewKeyed returns a new Hasher that uses the 32 byte input key and sets
// the output size to 32 bytes.
func NewKeyed(key []byte) (*Hasher, error) {
	if len(key) != KeySize {
		return nil, xhash.ErrKeySize
	}
	var k [8]uint32
	keyFromBytes(key, &k)
	return newSized(32, k, consts.Flag_Keyed), nil
}

// NewDeriveKey returns a Hasher that is initialized with the context string.
// See DeriveKey for details. It has a default output size of 32 bytes.
func NewDeriveKey(context string) *Hasher {
	ch := newSized(32, consts.IV, consts.Flag_DeriveKeyContext)
	_, _ = ch.WriteString(context)

	var key [KeySize]byte
	_, _ = ch.Digest().Read(key[:])
	ch.Wipe()

	var k [8]uint32
	keyFromBytes(key[:], &k)
	clear(key[:])
	return newSized(32, k, consts.Flag_DeriveKeyMaterial)
}

// DeriveKey derives a key based on reusable key material of any length, in
// the given context. The key will be stored in out, using all of its
// current length.
//
// Context strings must be hardcoded constants, and the recommended format is
// "[application] [commit timestamp] [purpose]", e.g., "example.com
// 2019-12-25 16:18:03 session tokens v1".
func DeriveKey(context string, material []byte, out []byte) {
	h := NewDeriveKey(context)
	defer h.Wipe()

	_, _ = h.Write(material)
	_, _ = h.Digest().Read(out)
}

// Sum256 returns the first 256 bits of the unkeyed digest of the data.
func Sum256(data []byte) (sum [32]byte) {
	h := newHasher(consts.IV, 0)
	_ = h.update(data)
	_, _ = newOutput(h.finalize()).Read(sum[:])
	return sum
}

// Sum512 returns the first 512 bits of the unkeyed digest of the data.
func Sum512(data []byte) (sum [64]byte) {
	h := newHasher(consts.IV, 0)
	_ = h.update(data)
	_, _ = newOutput(h.finalize()).Read(sum[:])
	return sum
}

// Write implements part of the hash.Hash interface. It only fails after the
// output has started being read.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.out != nil {
		return 0, xhash.ErrWriteAfterRead
	}
	if err := h.h.update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString is like Write but specialized to strings to avoid allocations.
func (h *Hasher) WriteString(p string) (int, error) {
	return h.Write([]byte(p))
}

// Reset implements part of the hash.Hash interface. It causes the Hasher to
// act as if it was newly created.
func (h *Hasher) Reset() {
	h.h.reset()
	h.out = nil
	h.limit.Rewind()
}

// Size implements part of the hash.Hash interface. It returns the number of
// bytes the hash will output.
func (h *Hasher) Size() int {
	return h.size
}

// BlockSize implements part of the hash.Hash interface. It returns the most
// natural size to write to the Hasher.
func (h *Hasher) BlockSize() int {
	return consts.ChunkLen
}

// Sum implements part of the hash.Hash interface. It appends the digest of
// the Hasher to the provided buffer and returns it.
func (h *Hasher) Sum(b []byte) []byte {
	if top := len(b) + h.size; top <= cap(b) && top >= len(b) {
		_, _ = h.Digest().Read(b[len(b):top])
		return b[:top]
	}

	tmp := make([]byte, h.size)
	_, _ = h.Digest().Read(tmp)
	return append(b, tmp...)
}

// Finalize returns the digest and resets the Hasher.
func (h *Hasher) Finalize() []byte {
	sum := h.Sum(nil)
	h.Reset()
	return sum
}

// Digest takes a snapshot of the hash state and returns an object that can
// be used to read and seek through 2^64 bytes of digest output. The Hasher
// is unchanged.
func (h *Hasher) Digest() *Output {
	return newOutput(h.h.finalize())
}

// SetOutputSize bounds the bytes Read may produce and sets the size Sum
// returns. It must be called before the first Read.
func (h *Hasher) SetOutputSize(bits uint64) error {
	if h.out != nil {
		return xhash.ErrReadStarted
	}
	if err := h.limit.SetBits(bits, math.MaxInt); err != nil {
		return err
	}
	h.size = int(bits / 8)
	return nil
}

// Read squeezes output. The first call finalizes the Hasher; subsequent
// calls continue the same stream.
func (h *Hasher) Read(p []byte) (int, error) {
	if err := h.limit.Take(len(p)); err != nil {
		return 0, err
	}
	if h.out == nil {
		h.out = h.Digest()
	}
	return h.out.Read(p)
}

// Clone returns a new Hasher with the same state as the original.
func (h *Hasher) Clone() *Hasher {
	c := *h
	c.h = h.h.clone()
	if h.out != nil {
		out := *h.out
		c.out = &out
	}
	return &c
}

// Wipe zeroes the key and all buffered input. The Hasher must not be used
// afterwards.
func (h *Hasher) Wipe() {
	h.h.wipe()
	h.out = nil
}

var (
	_ xhash.Hash = (*Hasher)(nil)
	_ xhash.XOF  = (*Hasher)(nil)
)
