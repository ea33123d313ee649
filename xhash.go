// Package xhash collects the shared surface of the BLAKE2, BLAKE3 and Keccak
// engines in this module: the Hash and XOF interfaces and the errors every
// engine reports.
//
// The engines themselves live in subpackages (blake2b, blake2s, blake2bp,
// blake2sp, blake3, keccak). Each one buffers input into its algorithm's
// block size, so any split of the same bytes across Write calls produces the
// same digest.
package xhash

import (
	"errors"
	"hash"
	"io"
)

// Hash is a hash.Hash that can also be finalized destructively.
type Hash interface {
	hash.Hash

	// Finalize returns the digest and resets the hash so it can be reused.
	Finalize() []byte
}

// XOF is an extendable-output function. Writes absorb input until the first
// Read, after which further writes fail with ErrWriteAfterRead.
type XOF interface {
	io.Writer
	io.Reader

	// SetOutputSize bounds the total number of bits that may be read. It
	// must be called before the first Read.
	SetOutputSize(bits uint64) error

	// Reset returns the XOF to its freshly constructed state.
	Reset()
}

var (
	ErrNilConfig      = errors.New("xhash: nil config")
	ErrParamBlock     = errors.New("xhash: parameter block must be exactly 8 words")
	ErrTreeConfig     = errors.New("xhash: invalid tree parameters")
	ErrKeySize        = errors.New("xhash: invalid key size")
	ErrSaltSize       = errors.New("xhash: invalid salt size")
	ErrPersonSize     = errors.New("xhash: invalid personalization size")
	ErrOutputSize     = errors.New("xhash: invalid output size")
	ErrOutputLimit    = errors.New("xhash: read exceeds output size")
	ErrShortBuffer    = errors.New("xhash: destination too short")
	ErrWriteAfterRead = errors.New("xhash: write after read")
	ErrReadStarted    = errors.New("xhash: output size changed after read")
	ErrMessageTooLong = errors.New("xhash: message too long")
)

// Squeeze reads exactly n bytes from x into dst[off:off+n]. It rejects a
// destination that cannot hold the request before reading anything.
func Squeeze(x io.Reader, dst []byte, off, n int) error {
	if off < 0 || n < 0 || off > len(dst) || n > len(dst)-off {
		return ErrShortBuffer
	}
	_, err := io.ReadFull(x, dst[off:off+n])
	return err
}

// Finalize returns the digest of h and resets it. Engines implementing Hash
// are finalized through their own method.
func Finalize(h hash.Hash) []byte {
	if f, ok := h.(Hash); ok {
		return f.Finalize()
	}
	sum := h.Sum(nil)
	h.Reset()
	return sum
}
