// Package secret holds key material that is zeroed deterministically.
package secret

// Key owns a private copy of secret bytes. The zero value and a nil *Key are
// both an empty key.
type Key struct {
	b []byte
}

// New copies b into a fresh Key. The caller keeps ownership of b.
func New(b []byte) *Key {
	if len(b) == 0 {
		return &Key{}
	}
	return &Key{b: append(make([]byte, 0, len(b)), b...)}
}

// Bytes returns the key material. The slice is only valid until Wipe.
func (k *Key) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.b
}

// Len returns the key length in bytes.
func (k *Key) Len() int {
	if k == nil {
		return 0
	}
	return len(k.b)
}

// Clone returns an independent copy of the key.
func (k *Key) Clone() *Key {
	if k == nil {
		return nil
	}
	return New(k.b)
}

// Wipe zeroes the key material and empties the key. It is safe to call more
// than once.
func (k *Key) Wipe() {
	if k == nil {
		return
	}
	clear(k.b)
	k.b = nil
}

// Zero clears b in place. Engines use it on scratch blocks that held key
// bytes.
func Zero(b []byte) { clear(b) }
