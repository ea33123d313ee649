// Package keccak implements the Keccak-f[1600] sponge and the functions
// built on it: SHA-3 and the original Keccak fixed-output hashes, the SHAKE
// and cSHAKE extendable-output functions, and KMAC.
package keccak

import (
	"fmt"

	"github.com/zeebo/xhash"
)

// Digest is a fixed-output sponge hash: SHA3-n or Keccak-n.
type Digest struct {
	s    sponge
	size int
}

func newDigest(size int, ds byte) *Digest {
	return &Digest{s: newSponge(200-2*size, ds), size: size}
}

// NewSHA3 returns SHA3-bits for bits of 224, 256, 384 or 512.
func NewSHA3(bits int) (*Digest, error) {
	switch bits {
	case 224, 256, 384, 512:
		return newDigest(bits/8, dsSHA3), nil
	}
	return nil, fmt.Errorf("sha3-%d: %w", bits, xhash.ErrOutputSize)
}

// NewKeccak returns the original Keccak-bits padding for bits of 224, 256,
// 288, 384 or 512.
func NewKeccak(bits int) (*Digest, error) {
	switch bits {
	case 224, 256, 288, 384, 512:
		return newDigest(bits/8, dsKeccak), nil
	}
	return nil, fmt.Errorf("keccak-%d: %w", bits, xhash.ErrOutputSize)
}

// NewSHA3_224 returns a SHA3-224 Digest.
func NewSHA3_224() *Digest { return newDigest(28, dsSHA3) }

// NewSHA3_256 returns a SHA3-256 Digest.
func NewSHA3_256() *Digest { return newDigest(32, dsSHA3) }

// NewSHA3_384 returns a SHA3-384 Digest.
func NewSHA3_384() *Digest { return newDigest(48, dsSHA3) }

// NewSHA3_512 returns a SHA3-512 Digest.
func NewSHA3_512() *Digest { return newDigest(64, dsSHA3) }

// NewKeccak224 returns a legacy Keccak-224 Digest.
func NewKeccak224() *Digest { return newDigest(28, dsKeccak) }

// NewKeccak256 returns a legacy Keccak-256 Digest.
func NewKeccak256() *Digest { return newDigest(32, dsKeccak) }

// NewKeccak288 returns a legacy Keccak-288 Digest.
func NewKeccak288() *Digest { return newDigest(36, dsKeccak) }

// NewKeccak384 returns a legacy Keccak-384 Digest.
func NewKeccak384() *Digest { return newDigest(48, dsKeccak) }

// NewKeccak512 returns a legacy Keccak-512 Digest.
func NewKeccak512() *Digest { return newDigest(64, dsKeccak) }

func sum(d *Digest, data []byte, out []byte) {
	_ = d.s.absorb(data)
	d.s.pad()
	d.s.squeeze(out)
}

// Sum224 returns the SHA3-224 digest of data.
func Sum224(data []byte) (out [28]byte) { sum(NewSHA3_224(), data, out[:]); return out }

// Sum256 returns the SHA3-256 digest of data.
func Sum256(data []byte) (out [32]byte) { sum(NewSHA3_256(), data, out[:]); return out }

// Sum384 returns the SHA3-384 digest of data.
func Sum384(data []byte) (out [48]byte) { sum(NewSHA3_384(), data, out[:]); return out }

// Sum512 returns the SHA3-512 digest of data.
func Sum512(data []byte) (out [64]byte) { sum(NewSHA3_512(), data, out[:]); return out }

// SumKeccak256 returns the Keccak-256 digest of data.
func SumKeccak256(data []byte) (out [32]byte) { sum(NewKeccak256(), data, out[:]); return out }

// SumKeccak512 returns the Keccak-512 digest of data.
func SumKeccak512(data []byte) (out [64]byte) { sum(NewKeccak512(), data, out[:]); return out }

// Size returns the digest size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the sponge rate in bytes.
func (d *Digest) BlockSize() int { return d.s.rate }

// Write absorbs p.
func (d *Digest) Write(p []byte) (int, error) {
	if err := d.s.absorb(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest to b without changing the state.
func (d *Digest) Sum(b []byte) []byte {
	out := make([]byte, d.size)
	d.s.sum(out)
	return append(b, out...)
}

// Finalize returns the digest and resets d.
func (d *Digest) Finalize() []byte {
	out := d.Sum(nil)
	d.Reset()
	return out
}

// Reset returns d to its initial state.
func (d *Digest) Reset() { d.s.reset() }

// Clone returns an independent copy.
func (d *Digest) Clone() *Digest { return &Digest{s: d.s.clone(), size: d.size} }

var _ xhash.Hash = (*Digest)(nil)
