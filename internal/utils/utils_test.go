package utils

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestBytesToWords(t *testing.T) {
	var bytes [64]uint8
	for i := range bytes {
		bytes[i] = byte(i)
	}

	var words [16]uint32
	BytesToWords(&bytes, &words)

	assert.Equal(t, words[0], uint32(0x03020100))
	assert.Equal(t, words[15], uint32(0x3f3e3d3c))

	var out [64]byte
	WordsToBytes(&words, out[:])
	assert.Equal(t, out, bytes)
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 1000; i++ {
		var words [16]uint64
		for j := range words {
			words[j] = pcg.Uint64()
		}

		var bytes [128]byte
		copy(bytes[:], AppendWords64(nil, words[:]...))

		var got [16]uint64
		BytesToWords64(&bytes, &got)
		assert.Equal(t, got, words)
	}

	for i := 0; i < 1000; i++ {
		var words [16]uint32
		for j := range words {
			words[j] = pcg.Uint32()
		}

		var bytes [64]byte
		copy(bytes[:], AppendWords32(nil, words[:]...))

		var got [16]uint32
		BytesToWords(&bytes, &got)
		assert.Equal(t, got, words)
	}
}

func TestPadBlock(t *testing.T) {
	block := []byte{9, 9, 9, 9}
	PadBlock(block, []byte{1, 2})
	assert.Equal(t, string(block), string([]byte{1, 2, 0, 0}))
}
