// Package tree runs a fixed set of leaf hashes over an input striped one
// block at a time, the way BLAKE2bp and BLAKE2sp distribute their input.
package tree

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/zeebo/xhash"
)

// parallelMin is the smallest write, in bytes, that is spread across
// goroutines. Smaller writes are absorbed on the calling goroutine.
const parallelMin = 64 << 10

// Engine is a leaf or root hash.
type Engine[E any] interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
	Clone() E
	Wipe()
}

// Parallel stripes input across its leaves: leaf i receives blocks i, i+P,
// i+2P and so on, where P is the number of leaves.
type Parallel[E Engine[E]] struct {
	leaves []E
	root   func() E
	block  int
	buf    []byte
	n      int
	total  uint64
}

// New returns a Parallel over leaves with the given block size. root builds
// a fresh root engine each time a digest is produced.
func New[E Engine[E]](leaves []E, block int, root func() E) *Parallel[E] {
	return &Parallel[E]{
		leaves: leaves,
		root:   root,
		block:  block,
		buf:    make([]byte, len(leaves)*block),
	}
}

// Write absorbs in.
func (p *Parallel[E]) Write(in []byte) (int, error) {
	if uint64(len(in)) > math.MaxUint64-p.total {
		return 0, xhash.ErrMessageTooLong
	}
	p.total += uint64(len(in))
	n := len(in)

	stride := len(p.buf)
	if fill := stride - p.n; p.n > 0 && len(in) >= fill {
		copy(p.buf[p.n:], in[:fill])
		in = in[fill:]
		if err := p.absorb(p.buf, false); err != nil {
			return 0, err
		}
		p.n = 0
	}

	whole := len(in) - len(in)%stride
	if whole > 0 {
		if err := p.absorb(in[:whole], whole >= parallelMin); err != nil {
			return 0, err
		}
		in = in[whole:]
	}

	p.n += copy(p.buf[p.n:], in)
	return n, nil
}

// absorb feeds whole stripes to the leaves, one goroutine per leaf when
// concurrent is set.
func (p *Parallel[E]) absorb(in []byte, concurrent bool) error {
	if !concurrent {
		for i := range p.leaves {
			if err := p.stripe(i, in); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for i := range p.leaves {
		g.Go(func() error { return p.stripe(i, in) })
	}
	return g.Wait()
}

func (p *Parallel[E]) stripe(i int, in []byte) error {
	stride := len(p.buf)
	leaf := p.leaves[i]
	for off := i * p.block; off < len(in); off += stride {
		if _, err := leaf.Write(in[off : off+p.block]); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the digests the leaves would produce if the input ended
// now, without changing any state.
func (p *Parallel[E]) Leaves() ([][]byte, error) {
	out := make([][]byte, len(p.leaves))

	var g errgroup.Group
	for i := range p.leaves {
		g.Go(func() error {
			leaf := p.leaves[i].Clone()
			defer leaf.Wipe()

			if lo := i * p.block; p.n > lo {
				hi := min(lo+p.block, p.n)
				if _, err := leaf.Write(p.buf[lo:hi]); err != nil {
					return err
				}
			}
			out[i] = leaf.Sum(nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sum appends the root digest to b without changing the state.
func (p *Parallel[E]) Sum(b []byte) []byte {
	digests, err := p.Leaves()
	if err != nil {
		// leaves only fail past the total length checked in Write
		panic(err)
	}
	return append(b, Combine(p.root(), digests)...)
}

// Combine absorbs the leaf digests into root in order and returns its
// digest.
func Combine[E Engine[E]](root E, digests [][]byte) []byte {
	defer root.Wipe()
	for _, d := range digests {
		_, _ = root.Write(d)
	}
	return root.Sum(nil)
}

// Reset returns every leaf and the stripe buffer to the initial state.
func (p *Parallel[E]) Reset() {
	for _, leaf := range p.leaves {
		leaf.Reset()
	}
	clear(p.buf)
	p.n = 0
	p.total = 0
}

// Clone returns an independent copy.
func (p *Parallel[E]) Clone() *Parallel[E] {
	c := *p
	c.leaves = make([]E, len(p.leaves))
	for i, leaf := range p.leaves {
		c.leaves[i] = leaf.Clone()
	}
	c.buf = append([]byte(nil), p.buf...)
	return &c
}

// Wipe zeroes all leaves and buffered input.
func (p *Parallel[E]) Wipe() {
	for _, leaf := range p.leaves {
		leaf.Wipe()
	}
	clear(p.buf)
	p.n = 0
}
