package blake2s

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xhash"
)

// ParamBlock returns the serialized 8-word parameter block for c.
func (c *Config) ParamBlock() ([]byte, error) { return c.params(0) }

func (c *Config) params(xofLength uint16) ([]byte, error) {
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
	if tree.MaxDepth == 0 || tree.InnerHashSize > Size || tree.NodeOffset > MaxNodeOffset {
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
	binary.LittleEndian.PutUint32(p[8:], uint32(tree.NodeOffset))
	binary.LittleEndian.PutUint16(p[12:], uint16(tree.NodeOffset>>32)|xofLength)
	p[14] = tree.NodeDepth
	p[15] = tree.InnerHashSize
	copy(p[16:24], c.Salt)
	copy(p[24:32], c.Person)
	return p, nil
}

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
	if p[15] > Size {
		return xhash.ErrTreeConfig
	}
	return nil
}

// NewNode returns a Digest initialized from a raw 8-word parameter block. See
// the blake2b package for the meaning of the arguments.
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
