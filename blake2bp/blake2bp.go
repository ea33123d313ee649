// Package blake2bp implements BLAKE2bp: four BLAKE2b leaves fed in
// round-robin 128-byte blocks, combined by a BLAKE2b root node.
package blake2bp

import (
	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/blake2b"
	"github.com/zeebo/xhash/internal/tree"
)

const (
	// Parallelism is the number of leaves.
	Parallelism = 4
	BlockSize   = blake2b.BlockSize
	Size        = blake2b.Size
	KeySize     = blake2b.KeySize
)

// Digest is an incremental BLAKE2bp hash.
type Digest struct {
	t    *tree.Parallel[*blake2b.Digest]
	size int
}

// New returns a BLAKE2bp Digest producing size bytes, keyed when key is
// non-empty.
func New(size int, key []byte) (*Digest, error) {
	if size < 1 || size > Size {
		return nil, xhash.ErrOutputSize
	}
	if len(key) > KeySize {
		return nil, xhash.ErrKeySize
	}

	leaves := make([]*blake2b.Digest, Parallelism)
	for i := range leaves {
		params, err := nodeParams(size, len(key), uint64(i), 0)
		if err != nil {
			return nil, err
		}
		leaves[i], err = blake2b.NewNode(params, key, Size, i == Parallelism-1)
		if err != nil {
			return nil, err
		}
	}

	rootParams, err := nodeParams(size, len(key), 0, 1)
	if err != nil {
		return nil, err
	}
	root := func() *blake2b.Digest {
		d, _ := blake2b.NewNode(rootParams, nil, size, true)
		return d
	}

	return &Digest{
		t:    tree.New(leaves, BlockSize, root),
		size: size,
	}, nil
}

// nodeParams builds the parameter block shared by leaves and root. The key
// length field is set on both, though only the leaves absorb the key.
func nodeParams(size, keyLen int, offset uint64, depth uint8) ([]byte, error) {
	cfg := blake2b.Config{
		Size: size,
		Key:  make([]byte, keyLen),
		Tree: &blake2b.Tree{
			Fanout:        Parallelism,
			MaxDepth:      2,
			NodeOffset:    offset,
			NodeDepth:     depth,
			InnerHashSize: Size,
		},
	}
	return cfg.ParamBlock()
}

// Sum returns the BLAKE2bp digest of data.
func Sum(data []byte, size int, key []byte) ([]byte, error) {
	d, err := New(size, key)
	if err != nil {
		return nil, err
	}
	defer d.Wipe()

	if _, err := d.Write(data); err != nil {
		return nil, err
	}
	return d.Sum(nil), nil
}

// Size returns the digest size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the leaf block size in bytes.
func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p, spreading large writes across the leaves concurrently.
func (d *Digest) Write(p []byte) (int, error) { return d.t.Write(p) }

// Sum appends the digest to b without changing the state.
func (d *Digest) Sum(b []byte) []byte { return d.t.Sum(b) }

// Finalize returns the digest and resets the hash.
func (d *Digest) Finalize() []byte {
	sum := d.Sum(nil)
	d.Reset()
	return sum
}

// Reset returns the hash to its keyed initial state.
func (d *Digest) Reset() { d.t.Reset() }

// Clone returns an independent copy.
func (d *Digest) Clone() *Digest { return &Digest{t: d.t.Clone(), size: d.size} }

// Wipe zeroes the leaf keys and buffered input.
func (d *Digest) Wipe() { d.t.Wipe() }

var _ xhash.Hash = (*Digest)(nil)
