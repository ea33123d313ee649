package blake3

import (
	"math/bits"

	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/utils"
)

// msgSched is the message word order for each of the seven rounds: the
// permutation applied repeatedly to the identity.
var msgSched = [7][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8},
	{3, 4, 10, 12, 13, 2, 7, 14, 6, 5, 9, 0, 11, 15, 8, 1},
	{10, 7, 12, 9, 14, 3, 13, 15, 4, 0, 11, 2, 5, 8, 1, 6},
	{12, 13, 9, 11, 15, 10, 14, 8, 7, 2, 5, 3, 0, 1, 6, 4},
	{9, 14, 11, 5, 8, 12, 15, 1, 13, 3, 0, 10, 2, 6, 4, 7},
	{11, 15, 5, 0, 1, 9, 8, 6, 14, 10, 2, 12, 3, 4, 7, 13},
}

func g(a, b, c, d, mx, my uint32) (uint32, uint32, uint32, uint32) {
	a += b + mx
	d = bits.RotateLeft32(d^a, -16)
	c += d
	b = bits.RotateLeft32(b^c, -12)
	a += b + my
	d = bits.RotateLeft32(d^a, -8)
	c += d
	b = bits.RotateLeft32(b^c, -7)
	return a, b, c, d
}

func compress(chain *[8]uint32, block *[16]uint32, counter uint64, blen uint32, flags uint32, out *[16]uint32) {
	s := [16]uint32{
		chain[0], chain[1], chain[2], chain[3],
		chain[4], chain[5], chain[6], chain[7],
		consts.IV0, consts.IV1, consts.IV2, consts.IV3,
		uint32(counter), uint32(counter >> 32), blen, flags,
	}

	for r := range msgSched {
		m := &msgSched[r]

		s[0], s[4], s[8], s[12] = g(s[0], s[4], s[8], s[12], block[m[0]], block[m[1]])
		s[1], s[5], s[9], s[13] = g(s[1], s[5], s[9], s[13], block[m[2]], block[m[3]])
		s[2], s[6], s[10], s[14] = g(s[2], s[6], s[10], s[14], block[m[4]], block[m[5]])
		s[3], s[7], s[11], s[15] = g(s[3], s[7], s[11], s[15], block[m[6]], block[m[7]])

		s[0], s[5], s[10], s[15] = g(s[0], s[5], s[10], s[15], block[m[8]], block[m[9]])
		s[1], s[6], s[11], s[12] = g(s[1], s[6], s[11], s[12], block[m[10]], block[m[11]])
		s[2], s[7], s[8], s[13] = g(s[2], s[7], s[8], s[13], block[m[12]], block[m[13]])
		s[3], s[4], s[9], s[14] = g(s[3], s[4], s[9], s[14], block[m[14]], block[m[15]])
	}

	for i := 0; i < 8; i++ {
		out[i] = s[i] ^ s[i+8]
		out[i+8] = s[i+8] ^ chain[i]
	}
}

//
// node
//

// node is a compression input whose output is either a chaining value or,
// with the root flag, output blocks.
type node struct {
	cv      [8]uint32
	block   [16]uint32
	counter uint64
	blen    uint32
	flags   uint32
}

func (n *node) chainingValue() (cv [8]uint32) {
	var out [16]uint32
	compress(&n.cv, &n.block, n.counter, n.blen, n.flags, &out)
	copy(cv[:], out[:8])
	return cv
}

func parentNode(left, right [8]uint32, key *[8]uint32, flags uint32) node {
	n := node{cv: *key, blen: consts.BlockLen, flags: flags | consts.Flag_Parent}
	copy(n.block[:8], left[:])
	copy(n.block[8:], right[:])
	return n
}

func keyFromBytes(key []byte, out *[8]uint32) {
	var block [16]uint32
	var buf [consts.BlockLen]byte
	copy(buf[:], key)
	utils.BytesToWords(&buf, &block)
	copy(out[:], block[:8])
	clear(buf[:])
	clear(block[:])
}
