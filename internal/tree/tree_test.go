package tree

import (
	"bytes"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

// recorder is an engine whose digest is everything written to it.
type recorder struct{ data []byte }

func (r *recorder) Write(p []byte) (int, error) { r.data = append(r.data, p...); return len(p), nil }
func (r *recorder) Sum(b []byte) []byte         { return append(b, r.data...) }
func (r *recorder) Reset()                      { r.data = nil }
func (r *recorder) Clone() *recorder            { return &recorder{data: append([]byte(nil), r.data...)} }
func (r *recorder) Wipe()                       { clear(r.data); r.data = nil }

func newRecorders(p, block int) *Parallel[*recorder] {
	leaves := make([]*recorder, p)
	for i := range leaves {
		leaves[i] = new(recorder)
	}
	return New(leaves, block, func() *recorder { return new(recorder) })
}

func input(n int) []byte {
	x := make([]byte, n)
	for i := range x {
		x[i] = byte(i) % 251
	}
	return x
}

// expected stripes data across p leaves the slow way.
func expected(data []byte, p, block int) [][]byte {
	out := make([][]byte, p)
	for i := range out {
		out[i] = []byte{}
	}
	for off := 0; off < len(data); off += block {
		i := (off / block) % p
		out[i] = append(out[i], data[off:min(off+block, len(data))]...)
	}
	return out
}

func TestParallel_Striping(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 63, 64, 65, 1000, parallelMin + 77} {
		data := input(n)
		p := newRecorders(4, 16)
		p.Write(data)

		got, err := p.Leaves()
		assert.NoError(t, err)
		exp := expected(data, 4, 16)
		for i := range exp {
			assert.That(t, bytes.Equal(got[i], exp[i]))
		}
		assert.That(t, bytes.Equal(p.Sum(nil), bytes.Join(exp, nil)))
	}
}

func TestParallel_Chunking(t *testing.T) {
	data := input(3 * parallelMin)
	whole := newRecorders(8, 32)
	whole.Write(data)
	exp := whole.Sum(nil)

	for i := 0; i < 20; i++ {
		p := newRecorders(8, 32)
		buf := data
		for len(buf) > 0 {
			n := int(pcg.Uint32()%uint32(2*parallelMin)) + 1
			if n > len(buf) {
				n = len(buf)
			}
			p.Write(buf[:n])
			buf = buf[n:]
		}
		assert.That(t, bytes.Equal(p.Sum(nil), exp))
	}
}

func TestParallel_CloneReset(t *testing.T) {
	p := newRecorders(2, 4)
	p.Write([]byte("abcdefghij"))

	c := p.Clone()
	c.Write([]byte("xyz"))
	assert.Equal(t, string(p.Sum(nil)), "abcdijefgh")
	assert.Equal(t, string(c.Sum(nil)), "abcdijxyefghz")

	p.Reset()
	assert.Equal(t, len(p.Sum(nil)), 0)
}

func TestCombine(t *testing.T) {
	got := Combine(new(recorder), [][]byte{[]byte("a"), []byte("bc"), []byte("d")})
	assert.Equal(t, string(got), "abcd")
}
