// Package squeeze tracks the read position of an extendable-output function
// against its output bound.
package squeeze

import "github.com/zeebo/xhash"

// Limit is the cursor of an XOF: how many bytes have been produced and how
// many may be produced in total. The offset never decreases.
type Limit struct {
	off uint64
	max uint64
}

// New returns a Limit allowing max bytes.
func New(max uint64) Limit { return Limit{max: max} }

// Take reserves n more bytes, failing without change if that would pass the
// bound.
func (l *Limit) Take(n int) error {
	if n < 0 || uint64(n) > l.max-l.off {
		return xhash.ErrOutputLimit
	}
	l.off += uint64(n)
	return nil
}

// SetBits sets the bound to bits/8 bytes. bits must be a positive multiple
// of 8 no larger than ceiling bytes, and nothing may have been read yet.
func (l *Limit) SetBits(bits, ceiling uint64) error {
	if l.off > 0 {
		return xhash.ErrReadStarted
	}
	if bits == 0 || bits%8 != 0 || bits/8 > ceiling {
		return xhash.ErrOutputSize
	}
	l.max = bits / 8
	return nil
}

// Offset returns the number of bytes produced so far.
func (l *Limit) Offset() uint64 { return l.off }

// Max returns the bound in bytes.
func (l *Limit) Max() uint64 { return l.max }

// Remaining returns how many bytes may still be produced.
func (l *Limit) Remaining() uint64 { return l.max - l.off }

// Rewind returns the offset to zero, keeping the bound.
func (l *Limit) Rewind() { l.off = 0 }
