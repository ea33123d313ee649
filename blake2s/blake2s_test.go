package blake2s

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
	xblake2s "golang.org/x/crypto/blake2s"

	"github.com/zeebo/xhash"
)

func input(n int) []byte {
	x := make([]byte, n)
	for i := range x {
		x[i] = byte(i) % 251
	}
	return x
}

func TestVectors(t *testing.T) {
	empty := Sum256(nil)
	assert.Equal(t, hex.EncodeToString(empty[:]), "69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9")

	abc := Sum256([]byte("abc"))
	assert.Equal(t, hex.EncodeToString(abc[:]), "508c5e8c327c14e2e1a72ba34eeb452f37458b209ed63a294d999b4c86675982")
}

func TestOracle(t *testing.T) {
	key := input(32)
	for _, n := range []int{0, 1, 63, 64, 65, 127, 128, 129, 1000, 4096} {
		data := input(n)

		exp := xblake2s.Sum256(data)
		got := Sum256(data)
		assert.Equal(t, hex.EncodeToString(got[:]), hex.EncodeToString(exp[:]))

		for _, klen := range []int{1, 17, 32} {
			ref, err := xblake2s.New256(key[:klen])
			assert.NoError(t, err)
			ref.Write(data)

			d, err := New256(key[:klen])
			assert.NoError(t, err)
			d.Write(data)
			assert.Equal(t, hex.EncodeToString(d.Sum(nil)), hex.EncodeToString(ref.Sum(nil)))
		}

		ref, _ := xblake2s.New128(key[:16])
		ref.Write(data)
		d, err := New128(key[:16])
		assert.NoError(t, err)
		d.Write(data)
		assert.Equal(t, hex.EncodeToString(d.Sum(nil)), hex.EncodeToString(ref.Sum(nil)))
	}

	_, err := New128(nil)
	assert.That(t, errors.Is(err, xhash.ErrKeySize))
}

func TestChunking(t *testing.T) {
	data := input(2048)
	exp := Sum256(data)

	for i := 0; i < 100; i++ {
		d, _ := New256(nil)
		buf := data
		for len(buf) > 0 {
			n := int(pcg.Uint32()%150) + 1
			if n > len(buf) {
				n = len(buf)
			}
			d.Write(buf[:n])
			buf = buf[n:]
		}
		assert.Equal(t, hex.EncodeToString(d.Finalize()), hex.EncodeToString(exp[:]))
	}
}

func TestConfig(t *testing.T) {
	cases := []struct {
		cfg *Config
		err error
	}{
		{nil, xhash.ErrNilConfig},
		{&Config{Size: 33}, xhash.ErrOutputSize},
		{&Config{Size: 32, Key: make([]byte, 33)}, xhash.ErrKeySize},
		{&Config{Size: 32, Salt: make([]byte, 9)}, xhash.ErrSaltSize},
		{&Config{Size: 32, Person: make([]byte, 9)}, xhash.ErrPersonSize},
		{&Config{Size: 32, Tree: &Tree{MaxDepth: 1, NodeOffset: 1 << 48}}, xhash.ErrTreeConfig},
	}
	for _, c := range cases {
		_, err := New(c.cfg)
		assert.That(t, errors.Is(err, c.err))
	}

	p, err := (&Config{
		Size: 16,
		Tree: &Tree{Fanout: 2, MaxDepth: 3, LeafSize: 4096, NodeOffset: 0x0102_0304_0506, NodeDepth: 1, InnerHashSize: 32},
	}).ParamBlock()
	assert.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(p[:16]), "10000203"+"00100000"+"060504030201"+"0120")

	_, err = NewNode(p[:28], nil, 16, false)
	assert.That(t, errors.Is(err, xhash.ErrParamBlock))
}

func TestClone(t *testing.T) {
	d, _ := New256([]byte("key"))
	d.WriteString("abc")
	c := d.Clone()
	d.WriteString("def")
	c.WriteString("def")
	assert.That(t, bytes.Equal(d.Sum(nil), c.Sum(nil)))
}

func TestXOF(t *testing.T) {
	data := input(200)
	for _, size := range []uint16{1, 31, 32, 33, 100, 1000} {
		for _, key := range [][]byte{nil, []byte("key")} {
			ref, err := xblake2s.NewXOF(size, key)
			assert.NoError(t, err)
			ref.Write(data)
			exp := make([]byte, size)
			_, err = io.ReadFull(ref, exp)
			assert.NoError(t, err)

			x, err := NewXOF(size, &Config{Key: key})
			assert.NoError(t, err)
			x.Write(data)
			got := make([]byte, size)
			_, err = x.Read(got)
			assert.NoError(t, err)

			assert.Equal(t, hex.EncodeToString(got), hex.EncodeToString(exp))
		}
	}

	t.Run("WriteString", func(t *testing.T) {
		ref, _ := xblake2s.NewXOF(40, nil)
		ref.Write([]byte("hello world"))
		exp := make([]byte, 40)
		io.ReadFull(ref, exp)

		x, _ := NewXOF(40, nil)
		_, err := x.WriteString("hello world")
		assert.NoError(t, err)
		got := make([]byte, 40)
		_, err = x.Read(got)
		assert.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(got), hex.EncodeToString(exp))
	})

	t.Run("Unknown", func(t *testing.T) {
		ref, _ := xblake2s.NewXOF(xblake2s.OutputLengthUnknown, nil)
		ref.Write(data)
		exp := make([]byte, 500)
		io.ReadFull(ref, exp)

		x, _ := NewXOF(OutputLengthUnknown, nil)
		x.Write(data)
		got := make([]byte, 500)
		_, err := x.Read(got)
		assert.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(got), hex.EncodeToString(exp))

		_, err = NewXOF(lengthUnknown, nil)
		assert.That(t, errors.Is(err, xhash.ErrOutputSize))
	})

	t.Run("Limits", func(t *testing.T) {
		x, _ := NewXOF(16, nil)
		_, err := x.Read(make([]byte, 17))
		assert.That(t, errors.Is(err, xhash.ErrOutputLimit))
		_, err = x.Read(make([]byte, 16))
		assert.NoError(t, err)
		_, err = x.Write([]byte("x"))
		assert.That(t, errors.Is(err, xhash.ErrWriteAfterRead))
		assert.That(t, errors.Is(x.SetOutputSize(8), xhash.ErrReadStarted))

		y, _ := NewXOF(16, nil)
		assert.That(t, errors.Is(y.SetOutputSize(8*65535), xhash.ErrOutputSize))
		assert.NoError(t, y.SetOutputSize(8*40))
		assert.Equal(t, len(y.Sum(nil)), 40)
	})
}
