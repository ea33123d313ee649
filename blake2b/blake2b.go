// Package blake2b implements the BLAKE2b hash function (RFC 7693) with its
// full parameter block: keying, salt, personalization and tree parameters,
// plus the BLAKE2Xb extendable-output function.
package blake2b

import (
	"github.com/zeebo/xhash"
)

const (
	// BlockSize is the BLAKE2b block size in bytes.
	BlockSize = 128
	// Size is the largest BLAKE2b digest size in bytes.
	Size = 64
	// Size384 is the size of a BLAKE2b-384 digest.
	Size384 = 48
	// Size256 is the size of a BLAKE2b-256 digest.
	Size256 = 32
	// KeySize is the largest key size in bytes.
	KeySize = 64
	// SaltSize is the salt size in bytes.
	SaltSize = 16
	// PersonSize is the personalization size in bytes.
	PersonSize = 16
	// ParamSize is the size of the parameter block: 8 words.
	ParamSize = 8 * 8
)

// Tree holds the tree hashing parameters of a node.
type Tree struct {
	Fanout        uint8  // 0 for unlimited
	MaxDepth      uint8  // 255 for unlimited, at least 1
	LeafSize      uint32 // 0 for unlimited or sequential mode
	NodeOffset    uint64 // 32 bits when used with NewXOF
	NodeDepth     uint8  // 0 for leaves
	InnerHashSize uint8  // 0 for sequential mode
	IsLastNode    bool
}

// Config configures a Digest. All fields except Size are optional. A nil
// Tree selects sequential mode.
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

// New512 returns a BLAKE2b-512 Digest, keyed when key is non-empty.
func New512(key []byte) (*Digest, error) { return New(&Config{Size: Size, Key: key}) }

// New384 returns a BLAKE2b-384 Digest, keyed when key is non-empty.
func New384(key []byte) (*Digest, error) { return New(&Config{Size: Size384, Key: key}) }

// New256 returns a BLAKE2b-256 Digest, keyed when key is non-empty.
func New256(key []byte) (*Digest, error) { return New(&Config{Size: Size256, Key: key}) }

// Sum512 returns the BLAKE2b-512 digest of data.
func Sum512(data []byte) (out [Size]byte) {
	sum(out[:], Size, data)
	return out
}

// Sum384 returns the BLAKE2b-384 digest of data.
func Sum384(data []byte) (out [Size384]byte) {
	sum(out[:], Size384, data)
	return out
}

// Sum256 returns the BLAKE2b-256 digest of data.
func Sum256(data []byte) (out [Size256]byte) {
	sum(out[:], Size256, data)
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

func sum(out []byte, size int, data []byte) {
	var params [ParamSize]byte
	params[0], params[2], params[3] = byte(size), 1, 1

	d := newDigest(params[:], nil, size, false)
	_, _ = d.Write(data)

	var buf [Size]byte
	d.finalize(&buf)
	copy(out, buf[:size])
}

var _ xhash.Hash = (*Digest)(nil)
