package keccak

import (
	"encoding/binary"

	"github.com/zeebo/xhash/internal/framer"
)

// Domain separation bytes, including the first padding bit.
const (
	dsKeccak = 0x01
	dsSHA3   = 0x06
	dsShake  = 0x1f
	dsCShake = 0x04
)

// maxRate is the largest rate in bytes, that of SHAKE128.
const maxRate = 168

// lanes is the 1600-bit state. As a compressor it absorbs one rate-sized
// block and permutes.
type lanes [25]uint64

func (a *lanes) Compress(block []byte) {
	for i := 0; i < len(block)/8; i++ {
		a[i] ^= binary.LittleEndian.Uint64(block[8*i:])
	}
	keccakF1600((*[25]uint64)(a))
}

// sponge absorbs through an eager framer, so at most rate-1 bytes are ever
// pending, and squeezes rate bytes of lanes at a time.
type sponge struct {
	a    lanes
	fr   framer.Framer[*lanes]
	rate int
	ds   byte

	squeezing bool
	padded    lanes // state right after padding, for restarting output
	blocks    uint64
	buf       [maxRate]byte
	pos       int
}

func newSponge(rate int, ds byte) sponge {
	return sponge{
		fr:   framer.New[*lanes](rate, false, 0),
		rate: rate,
		ds:   ds,
		pos:  rate,
	}
}

func (s *sponge) absorb(p []byte) error { return s.fr.Write(&s.a, p) }

// pad absorbs the final padded block and switches to squeezing.
func (s *sponge) pad() {
	var block [maxRate]byte
	pending := s.fr.Pending()
	copy(block[:], pending)
	block[len(pending)] ^= s.ds
	block[s.rate-1] ^= 0x80
	s.a.Compress(block[:s.rate])
	clear(block[:])

	s.padded = s.a
	s.squeezing = true
	s.blocks = 0
	s.pos = s.rate
}

// rewind restarts the output stream from its first byte.
func (s *sponge) rewind() {
	s.a = s.padded
	s.blocks = 0
	s.pos = s.rate
}

func (s *sponge) squeeze(p []byte) {
	for len(p) > 0 {
		if s.pos == s.rate {
			if s.blocks > 0 {
				keccakF1600((*[25]uint64)(&s.a))
			}
			for i := 0; i < s.rate/8; i++ {
				binary.LittleEndian.PutUint64(s.buf[8*i:], s.a[i])
			}
			s.blocks++
			s.pos = 0
		}
		k := copy(p, s.buf[s.pos:s.rate])
		s.pos += k
		p = p[k:]
	}
}

func (s *sponge) reset() {
	s.a = lanes{}
	s.padded = lanes{}
	s.fr.Reset()
	s.squeezing = false
	s.blocks = 0
	s.pos = s.rate
	clear(s.buf[:])
}

func (s *sponge) clone() sponge {
	c := *s
	c.fr = s.fr.Clone()
	return c
}

// sum writes len(out) bytes of output for the input so far, leaving s
// unchanged.
func (s *sponge) sum(out []byte) {
	c := s.clone()
	if c.squeezing {
		c.rewind()
	} else {
		c.pad()
	}
	c.squeeze(out)
}
