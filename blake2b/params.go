package blake2b

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xhash"
)

// ParamBlock returns the serialized 8-word parameter block for c, validating
// every field.
func (c *Config) ParamBlock() ([]byte, error) { return c.params(0) }

func (c *Config) params(xofLength uint32) ([]byte, error) {
	if c == nil {
		return nil, xhash.ErrNilConfig
	}
	if c.Size < 1 || c.Size > Size {
		return nil, xhash.ErrOutputSize
	}
	if len(c.Key) > KeySize {
		return nil, xhash.ErrKeySize
	}
	if len(c.Salt) > SaltSize {
		return nil, xhash.ErrSaltSize
	}
	if len(c.Person) > PersonSize {
		return nil, xhash.ErrPersonSize
	}

	tree := Tree{Fanout: 1, MaxDepth: 1}
	if c.Tree != nil {
		tree = *c.Tree
	}
	if tree.MaxDepth == 0 || tree.InnerHashSize > Size {
		return nil, xhash.ErrTreeConfig
	}
	if xofLength != 0 && tree.NodeOffset > math.MaxUint32 {
		return nil, xhash.ErrTreeConfig
	}

	p := make([]byte, ParamSize)
	p[0] = byte(c.Size)
	p[1] = byte(len(c.Key))
	p[2] = tree.Fanout
	p[3] = tree.MaxDepth
	binary.LittleEndian.PutUint32(p[4:], tree.LeafSize)
	binary.LittleEndian.PutUint64(p[8:], tree.NodeOffset|uint64(xofLength)<<32)
	p[16] = tree.NodeDepth
	p[17] = tree.InnerHashSize
	copy(p[32:48], c.Salt)
	copy(p[48:64], c.Person)
	return p, nil
}

// checkParams validates the fields of a raw parameter block that bound the
// engine's behavior.
func checkParams(p []byte) error {
	if len(p) != ParamSize {
		return xhash.ErrParamBlock
	}
	if p[0] < 1 || p[0] > Size {
		return xhash.ErrOutputSize
	}
	if p[1] > KeySize {
		return xhash.ErrKeySize
	}
	if p[17] > Size {
		return xhash.ErrTreeConfig
	}
	return nil
}

// NewNode returns a Digest initialized from a raw parameter block, keyed by
// key, emitting size bytes, and flagged as the last node of its level when
// last is set. The block must be exactly 8 words; the digest length it
// encodes may differ from size, as it does for BLAKE2bp leaves.
func NewNode(params, key []byte, size int, last bool) (*Digest, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if len(key) > KeySize {
		return nil, xhash.ErrKeySize
	}
	if size < 1 || size > Size {
		return nil, xhash.ErrOutputSize
	}
	return newDigest(params, key, size, last), nil
}
