// Package blake2s implements the BLAKE2s hash function (RFC 7693), the
// 32-bit member of the BLAKE2 family, with keying, salt, personalization,
// tree parameters and the BLAKE2Xs extendable-output function.
package blake2s

import (
	"github.com/zeebo/xhash"
)

const (
	BlockSize  = 64
	Size       = 32
	Size224    = 28
	Size160    = 20
	Size128    = 16
	KeySize    = 32
	SaltSize   = 8
	PersonSize = 8
	ParamSize  = 8 * 4

	// MaxNodeOffset is the largest node offset: the field is 48 bits wide.
	MaxNodeOffset = 1<<48 - 1
)

// Tree holds the tree hashing parameters of a node.
type Tree struct {
	Fanout        uint8
	MaxDepth      uint8
	LeafSize      uint32
	NodeOffset    uint64 // at most MaxNodeOffset, 32 bits with NewXOF
	NodeDepth     uint8
	InnerHashSize uint8
	IsLastNode    bool
}

// Config configures a Digest. A nil Tree selects sequential mode.
type Config struct {
	Size   int
	Key    []byte
	Salt   []byte
	Person []byte
	Tree   *Tree
}

// New returns a Digest for the configuration.
func New(c *Config) (*Digest, error) {
	params, err := c.params(0)
	if err != nil {
		return nil, err
	}
	return newDigest(params, c.Key, c.Size, c.Tree != nil && c.Tree.IsLastNode), nil
}

// New256 returns a BLAKE2s-256 Digest, keyed when key is non-empty.
func New256(key []byte) (*Digest, error) { return New(&Config{Size: Size, Key: key}) }

// New128 returns a keyed BLAKE2s-128 Digest. A 128-bit digest is only
// offered as a MAC, so key must not be empty.
func New128(key []byte) (*Digest, error) {
	if len(key) == 0 {
		return nil, xhash.ErrKeySize
	}
	return New(&Config{Size: Size128, Key: key})
}

// Sum256 returns the BLAKE2s-256 digest of data.
func Sum256(data []byte) (out [Size]byte) {
	var params [ParamSize]byte
	params[0], params[2], params[3] = Size, 1, 1

	d := newDigest(params[:], nil, Size, false)
	_, _ = d.Write(data)
	d.finalize(&out)
	return out
}

// Sum returns the digest of data under the configuration.
func Sum(data []byte, c *Config) ([]byte, error) {
	d, err := New(c)
	if err != nil {
		return nil, err
	}
	defer d.Wipe()

	_, _ = d.Write(data)
	return d.Sum(nil), nil
}

var _ xhash.Hash = (*Digest)(nil)
