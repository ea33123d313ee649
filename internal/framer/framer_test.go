package framer

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
	"github.com/zeebo/xhash"
)

type recorder struct{ blocks []string }

func (r *recorder) Compress(block []byte) { r.blocks = append(r.blocks, string(block)) }

func input(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i+1) % 251
	}
	return buf
}

func TestFramer_Lazy(t *testing.T) {
	for n := 0; n <= 64; n++ {
		var r recorder
		f := New[*recorder](16, true, 0)
		assert.NoError(t, f.Write(&r, input(n)))

		// every full block except the last stays pending
		full := 0
		if n > 0 {
			full = (n - 1) / 16
		}
		assert.Equal(t, len(r.blocks), full)
		assert.Equal(t, len(f.Pending()), n-16*full)
		assert.Equal(t, f.Total(), uint64(n))
	}
}

func TestFramer_Eager(t *testing.T) {
	for n := 0; n <= 64; n++ {
		var r recorder
		f := New[*recorder](16, false, 0)
		assert.NoError(t, f.Write(&r, input(n)))

		assert.Equal(t, len(r.blocks), n/16)
		assert.Equal(t, len(f.Pending()), n%16)
	}
}

func TestFramer_ChunkingInvariance(t *testing.T) {
	data := input(1000)

	for _, lazy := range []bool{true, false} {
		var exp recorder
		ef := New[*recorder](64, lazy, 0)
		assert.NoError(t, ef.Write(&exp, data))

		for i := 0; i < 100; i++ {
			var got recorder
			gf := New[*recorder](64, lazy, 0)

			for rem := data; len(rem) > 0; {
				n := int(pcg.Uint32()%150) + 1
				if n > len(rem) {
					n = len(rem)
				}
				assert.NoError(t, gf.Write(&got, rem[:n]))
				rem = rem[n:]
			}

			assert.Equal(t, len(got.blocks), len(exp.blocks))
			for j := range exp.blocks {
				assert.Equal(t, got.blocks[j], exp.blocks[j])
			}
			assert.Equal(t, string(gf.Pending()), string(ef.Pending()))
		}
	}
}

func TestFramer_ClearsCompressedBlock(t *testing.T) {
	for _, lazy := range []bool{true, false} {
		var r recorder
		f := New[*recorder](16, lazy, 0)

		key := make([]byte, 16)
		for i := range key {
			key[i] = 0xaa
		}
		assert.NoError(t, f.Write(&r, key[:7]))
		assert.NoError(t, f.Write(&r, key[7:]))
		assert.NoError(t, f.Write(&r, []byte("x")))

		assert.Equal(t, len(r.blocks), 1)
		assert.Equal(t, string(f.Pending()), "x")
		for _, b := range f.buf[1:] {
			assert.Equal(t, b, byte(0))
		}
	}
}

func TestFramer_Limit(t *testing.T) {
	var r recorder
	f := New[*recorder](16, true, 20)

	assert.NoError(t, f.Write(&r, input(20)))
	err := f.Write(&r, input(1))
	assert.That(t, errors.Is(err, xhash.ErrMessageTooLong))
	assert.Equal(t, f.Total(), uint64(20))
}

func TestFramer_Clone(t *testing.T) {
	var r recorder
	f := New[*recorder](16, true, 0)
	assert.NoError(t, f.Write(&r, []byte("abc")))

	g := f.Clone()
	assert.NoError(t, g.Write(&r, []byte("def")))

	assert.Equal(t, string(f.Pending()), "abc")
	assert.Equal(t, string(g.Pending()), "abcdef")

	f.Reset()
	assert.Equal(t, len(f.Pending()), 0)
	assert.Equal(t, string(g.Pending()), "abcdef")
}
