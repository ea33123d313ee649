package blake2b

import (
	"math/bits"

	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/utils"
)

const rounds = 12

func g(a, b, c, d, mx, my uint64) (uint64, uint64, uint64, uint64) {
	a += b + mx
	d = bits.RotateLeft64(d^a, -32)
	c += d
	b = bits.RotateLeft64(b^c, -24)
	a += b + my
	d = bits.RotateLeft64(d^a, -16)
	c += d
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}

// compress mixes one 128-byte block into h under counter t and flags f.
func compress(h *[8]uint64, t, f *[2]uint64, block []byte) {
	var m [16]uint64
	utils.BytesToWords64((*[BlockSize]byte)(block), &m)

	iv := &consts.IV64
	v := [16]uint64{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		iv[0], iv[1], iv[2], iv[3],
		iv[4] ^ t[0], iv[5] ^ t[1], iv[6] ^ f[0], iv[7] ^ f[1],
	}

	for r := 0; r < rounds; r++ {
		s := &consts.Sigma[r%10]

		v[0], v[4], v[8], v[12] = g(v[0], v[4], v[8], v[12], m[s[0]], m[s[1]])
		v[1], v[5], v[9], v[13] = g(v[1], v[5], v[9], v[13], m[s[2]], m[s[3]])
		v[2], v[6], v[10], v[14] = g(v[2], v[6], v[10], v[14], m[s[4]], m[s[5]])
		v[3], v[7], v[11], v[15] = g(v[3], v[7], v[11], v[15], m[s[6]], m[s[7]])

		v[0], v[5], v[10], v[15] = g(v[0], v[5], v[10], v[15], m[s[8]], m[s[9]])
		v[1], v[6], v[11], v[12] = g(v[1], v[6], v[11], v[12], m[s[10]], m[s[11]])
		v[2], v[7], v[8], v[13] = g(v[2], v[7], v[8], v[13], m[s[12]], m[s[13]])
		v[3], v[4], v[9], v[14] = g(v[3], v[4], v[9], v[14], m[s[14]], m[s[15]])
	}

	for i := range h {
		h[i] ^= v[i] ^ v[i+8]
	}
}
