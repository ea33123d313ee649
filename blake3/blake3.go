package blake3

import (
	"math/bits"

	"github.com/zeebo/xhash/internal/consts"
	"github.com/zeebo/xhash/internal/framer"
	"github.com/zeebo/xhash/internal/utils"
)

//
// hasher contains state for a blake3 hash
//

type hasher struct {
	cs chunkState
	fr framer.Framer[*chunkState]
}

func newHasher(key [8]uint32, flags uint32) hasher {
	h := hasher{
		cs: chunkState{key: key, flags: flags},
		fr: framer.New[*chunkState](consts.BlockLen, true, 0),
	}
	h.reset()
	return h
}

func (h *hasher) reset() {
	h.cs.reset()
	h.fr.Reset()
}

func (h *hasher) update(p []byte) error { return h.fr.Write(&h.cs, p) }

// finalize returns the root node for the input so far without changing the
// state.
func (h *hasher) finalize() node {
	cs := &h.cs
	pending := h.fr.Pending()

	n := node{
		cv:      cs.cv,
		counter: cs.chunk,
		blen:    uint32(len(pending)),
		flags:   cs.flags | consts.Flag_ChunkEnd,
	}
	if cs.blocks == 0 {
		n.flags |= consts.Flag_ChunkStart
	}

	var buf [consts.BlockLen]byte
	copy(buf[:], pending)
	utils.BytesToWords(&buf, &n.block)

	for used := cs.stack.used; used != 0; used &= used - 1 {
		lvl := bits.TrailingZeros64(used)
		n = parentNode(cs.stack.cvs[lvl], n.chainingValue(), &cs.key, cs.flags)
	}

	n.flags |= consts.Flag_Root
	return n
}

func (h *hasher) clone() hasher {
	return hasher{cs: h.cs, fr: h.fr.Clone()}
}

func (h *hasher) wipe() {
	h.cs = chunkState{}
	h.fr.Reset()
}

//
// chunk state
//

// chunkState compresses the blocks of the current chunk. The framer only
// hands it a block once more input follows, so a sixteenth block always
// completes a chunk that is not the last one.
type chunkState struct {
	key    [8]uint32
	flags  uint32
	cv     [8]uint32
	chunk  uint64
	blocks int
	stack  cvstack
}

func (cs *chunkState) reset() {
	cs.cv = cs.key
	cs.chunk = 0
	cs.blocks = 0
	cs.stack = cvstack{}
}

func (cs *chunkState) Compress(block []byte) {
	var m [16]uint32
	utils.BytesToWords((*[consts.BlockLen]byte)(block), &m)

	flags := cs.flags
	if cs.blocks == 0 {
		flags |= consts.Flag_ChunkStart
	}
	if cs.blocks == consts.ChunkLen/consts.BlockLen-1 {
		flags |= consts.Flag_ChunkEnd
	}

	var out [16]uint32
	compress(&cs.cv, &m, cs.chunk, consts.BlockLen, flags, &out)
	copy(cs.cv[:], out[:8])
	cs.blocks++

	if cs.blocks == consts.ChunkLen/consts.BlockLen {
		cs.stack.push(cs.cv, &cs.key, cs.flags)
		cs.cv = cs.key
		cs.chunk++
		cs.blocks = 0
	}
}

//
// chain value stack
//

// cvstack holds the roots of complete subtrees. Bit h of used is set when
// cvs[h] holds a subtree of 2^h chunks, so used always equals the number of
// completed chunks and pushing is a binary increment.
type cvstack struct {
	used uint64
	cvs  [consts.MaxDepth][8]uint32
}

func (s *cvstack) push(cv [8]uint32, key *[8]uint32, flags uint32) {
	h := 0
	for s.used>>h&1 == 1 {
		n := parentNode(s.cvs[h], cv, key, flags)
		cv = n.chainingValue()
		h++
	}
	s.cvs[h] = cv
	s.used++
}
