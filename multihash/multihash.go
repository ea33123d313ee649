// Package multihash installs the engines of this module into go-multihash,
// replacing the default implementations for the codes they cover.
//
// It is meant to be used once at program start:
//
//	multihash.Register()
//	mh, err := gomultihash.Sum(data, gomultihash.BLAKE3, -1)
package multihash

import (
	"hash"
	"sync"

	mhcore "github.com/multiformats/go-multihash/core"

	"github.com/zeebo/xhash/registry"
)

var once sync.Once

// Register installs every algorithm that has a multihash code. It is safe
// to call more than once.
func Register() {
	once.Do(func() {
		for _, name := range registry.Names() {
			a, err := registry.Lookup(name)
			if err != nil {
				continue
			}
			for _, size := range a.MultihashSizes() {
				code, ok := a.MultihashCode(size)
				if !ok {
					continue
				}
				mhcore.Register(code, factory(a, size))
			}
		}
	})
}

func factory(a registry.Algorithm, size int) func() hash.Hash {
	return func() hash.Hash {
		h, err := a.New(registry.Params{Size: size})
		if err != nil {
			// MultihashSizes only yields sizes the algorithm accepts
			panic(err)
		}
		return h
	}
}
