// Package registry maps algorithm names to the engines of this module so
// that tools can construct any of them from a name and a few parameters.
package registry

import (
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/blake2b"
	"github.com/zeebo/xhash/blake2bp"
	"github.com/zeebo/xhash/blake2s"
	"github.com/zeebo/xhash/blake2sp"
	"github.com/zeebo/xhash/blake3"
	"github.com/zeebo/xhash/keccak"
)

// Params are the construction parameters shared by all algorithms. Fields an
// algorithm has no use for must be left empty.
type Params struct {
	Size   int    // output bytes, 0 for the default
	Key    []byte // MAC key
	Name   []byte // cSHAKE function name
	Custom []byte // BLAKE2 personalization, cSHAKE/KMAC customization, BLAKE3 derive-key context
}

// Algorithm describes one named algorithm.
type Algorithm struct {
	Name        string
	DefaultSize int
	MaxSize     int // 0 when any positive size is allowed
	XOF         bool

	named bool // accepts Params.Name
	fixed bool // only DefaultSize is accepted

	// code is the multihash code for DefaultSize, with the size added for
	// the BLAKE2 families.
	code      uint64
	codeSized bool

	new func(Params) (hash.Hash, error)
}

// ErrUnknown is returned for names that are not registered.
var ErrUnknown = errors.New("xhash: unknown algorithm")

var (
	errKeyUnused    = fmt.Errorf("key not supported: %w", xhash.ErrKeySize)
	errCustomUnused = fmt.Errorf("customization not supported: %w", xhash.ErrPersonSize)
)

var algorithms = map[string]Algorithm{}

func register(a Algorithm) { algorithms[a.Name] = a }

// Lookup returns the algorithm registered under name, ignoring case.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return Algorithm{}, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
	return a, nil
}

// Names returns the registered names in order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the named algorithm.
func New(name string, p Params) (hash.Hash, error) {
	a, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return a.New(p)
}

// New constructs the algorithm, filling in the default size and checking
// the size against the algorithm's bounds.
func (a Algorithm) New(p Params) (hash.Hash, error) {
	if p.Size == 0 {
		p.Size = a.DefaultSize
	}
	if p.Size < 0 || (a.MaxSize > 0 && p.Size > a.MaxSize) || (a.fixed && p.Size != a.DefaultSize) {
		return nil, fmt.Errorf("%s: size %d: %w", a.Name, p.Size, xhash.ErrOutputSize)
	}
	if !a.named && len(p.Name) > 0 {
		return nil, fmt.Errorf("%s: %w", a.Name, errCustomUnused)
	}
	h, err := a.new(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name, err)
	}
	return h, nil
}

// MultihashCode returns the multihash code for the algorithm at size bytes.
func (a Algorithm) MultihashCode(size int) (uint64, bool) {
	switch {
	case a.code == 0:
		return 0, false
	case a.codeSized:
		return a.code + uint64(size), size >= 1 && size <= a.MaxSize
	default:
		return a.code, size == a.DefaultSize
	}
}

// MultihashSizes lists the output sizes that have their own multihash code:
// every size for BLAKE2b and BLAKE2s, the default size otherwise.
func (a Algorithm) MultihashSizes() []int {
	switch {
	case a.code == 0:
		return nil
	case a.codeSized:
		out := make([]int, a.MaxSize)
		for i := range out {
			out[i] = i + 1
		}
		return out
	default:
		return []int{a.DefaultSize}
	}
}

func init() {
	register(Algorithm{Name: "blake2b", DefaultSize: blake2b.Size, MaxSize: blake2b.Size, code: 0xb200, codeSized: true,
		new: func(p Params) (hash.Hash, error) {
			return blake2b.New(&blake2b.Config{Size: p.Size, Key: p.Key, Person: p.Custom})
		}})
	register(Algorithm{Name: "blake2s", DefaultSize: blake2s.Size, MaxSize: blake2s.Size, code: 0xb240, codeSized: true,
		new: func(p Params) (hash.Hash, error) {
			return blake2s.New(&blake2s.Config{Size: p.Size, Key: p.Key, Person: p.Custom})
		}})
	register(Algorithm{Name: "blake2bp", DefaultSize: blake2bp.Size, MaxSize: blake2bp.Size,
		new: func(p Params) (hash.Hash, error) {
			if len(p.Custom) > 0 {
				return nil, errCustomUnused
			}
			return blake2bp.New(p.Size, p.Key)
		}})
	register(Algorithm{Name: "blake2sp", DefaultSize: blake2sp.Size, MaxSize: blake2sp.Size,
		new: func(p Params) (hash.Hash, error) {
			if len(p.Custom) > 0 {
				return nil, errCustomUnused
			}
			return blake2sp.New(p.Size, p.Key)
		}})
	register(Algorithm{Name: "blake2xb", DefaultSize: blake2b.Size, XOF: true,
		new: func(p Params) (hash.Hash, error) {
			if uint64(p.Size) > blake2b.MaxOutputLength {
				return nil, xhash.ErrOutputSize
			}
			return blake2b.NewXOF(uint32(p.Size), &blake2b.Config{Key: p.Key, Person: p.Custom})
		}})
	register(Algorithm{Name: "blake2xs", DefaultSize: blake2s.Size, MaxSize: blake2s.MaxOutputLength, XOF: true,
		new: func(p Params) (hash.Hash, error) {
			return blake2s.NewXOF(uint16(p.Size), &blake2s.Config{Key: p.Key, Person: p.Custom})
		}})
	register(Algorithm{Name: "blake3", DefaultSize: 32, XOF: true, code: 0x1e,
		new: newBlake3})

	for _, bits := range []int{224, 256, 384, 512} {
		register(Algorithm{Name: fmt.Sprintf("sha3-%d", bits), DefaultSize: bits / 8, MaxSize: bits / 8,
			fixed: true, code: sha3Codes[bits],
			new: func(p Params) (hash.Hash, error) {
				if err := unkeyed(p); err != nil {
					return nil, err
				}
				return keccak.NewSHA3(bits)
			}})
	}
	for _, bits := range []int{224, 256, 288, 384, 512} {
		register(Algorithm{Name: fmt.Sprintf("keccak-%d", bits), DefaultSize: bits / 8, MaxSize: bits / 8,
			fixed: true, code: keccakCodes[bits],
			new: func(p Params) (hash.Hash, error) {
				if err := unkeyed(p); err != nil {
					return nil, err
				}
				return keccak.NewKeccak(bits)
			}})
	}

	register(Algorithm{Name: "shake128", DefaultSize: 32, XOF: true, named: true, code: 0x18,
		new: func(p Params) (hash.Hash, error) { return newShake(keccak.NewCShake128, p) }})
	register(Algorithm{Name: "shake256", DefaultSize: 64, XOF: true, named: true, code: 0x19,
		new: func(p Params) (hash.Hash, error) { return newShake(keccak.NewCShake256, p) }})

	register(Algorithm{Name: "kmac128", DefaultSize: 32,
		new: func(p Params) (hash.Hash, error) { return keccak.NewKMAC128(p.Key, p.Custom, p.Size) }})
	register(Algorithm{Name: "kmac256", DefaultSize: 64,
		new: func(p Params) (hash.Hash, error) { return keccak.NewKMAC256(p.Key, p.Custom, p.Size) }})
	register(Algorithm{Name: "kmacxof128", DefaultSize: 32, XOF: true,
		new: func(p Params) (hash.Hash, error) { return sized(keccak.NewKMACXOF128(p.Key, p.Custom), p.Size) }})
	register(Algorithm{Name: "kmacxof256", DefaultSize: 64, XOF: true,
		new: func(p Params) (hash.Hash, error) { return sized(keccak.NewKMACXOF256(p.Key, p.Custom), p.Size) }})
}

var sha3Codes = map[int]uint64{224: 0x17, 256: 0x16, 384: 0x15, 512: 0x14}

// Keccak-288 has no multihash code.
var keccakCodes = map[int]uint64{224: 0x1a, 256: 0x1b, 384: 0x1c, 512: 0x1d}

func unkeyed(p Params) error {
	switch {
	case len(p.Key) > 0:
		return errKeyUnused
	case len(p.Custom) > 0:
		return errCustomUnused
	}
	return nil
}

// sized applies a non-default output size to an XOF.
func sized[X interface {
	hash.Hash
	SetOutputSize(uint64) error
}](x X, size int) (hash.Hash, error) {
	if size != x.Size() {
		if err := x.SetOutputSize(uint64(size) * 8); err != nil {
			return nil, err
		}
	}
	return x, nil
}

func newShake(ctor func(n, s []byte) *keccak.Shake, p Params) (hash.Hash, error) {
	if len(p.Key) > 0 {
		return nil, errKeyUnused
	}
	return sized(ctor(p.Name, p.Custom), p.Size)
}

func newBlake3(p Params) (hash.Hash, error) {
	var h *blake3.Hasher
	switch {
	case len(p.Key) > 0 && len(p.Custom) > 0:
		return nil, errCustomUnused
	case len(p.Key) > 0:
		var err error
		if h, err = blake3.NewKeyed(p.Key); err != nil {
			return nil, err
		}
	case len(p.Custom) > 0:
		h = blake3.NewDeriveKey(string(p.Custom))
	default:
		h = blake3.New()
	}
	return sized(h, p.Size)
}
