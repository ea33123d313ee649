package main

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/multiformats/go-multibase"
	gomultihash "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zeebo/xhash"
	"github.com/zeebo/xhash/multihash"
	"github.com/zeebo/xhash/registry"
)

// summer produces one encoded digest per input.
type summer struct {
	alg    registry.Algorithm
	params registry.Params
	code   uint64 // multihash code, 0 for a bare digest
	encode func([]byte) string
}

func newSummer(o *options) (*summer, error) {
	alg, err := registry.Lookup(o.algo)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	s := &summer{
		alg: alg,
		params: registry.Params{
			Size:   o.size,
			Key:    o.key,
			Name:   o.name,
			Custom: o.custom,
		},
	}

	// construct once so that bad parameters fail before any input is read
	if _, err := s.hash(); err != nil {
		return nil, err
	}

	if o.multihash {
		if len(o.key) > 0 || len(o.custom) > 0 || len(o.name) > 0 {
			return nil, errors.Errorf("%s: multihash digests take no key or customization", alg.Name)
		}
		size := o.size
		if size == 0 {
			size = alg.DefaultSize
		}
		code, ok := alg.MultihashCode(size)
		if !ok {
			return nil, errors.Errorf("%s: no multihash code for size %d", alg.Name, size)
		}
		multihash.Register()
		s.code = code
	}

	if s.encode, err = encoder(o.encoding); err != nil {
		return nil, err
	}
	return s, nil
}

func encoder(name string) (func([]byte) string, error) {
	if name == "" || name == "hex" {
		return hex.EncodeToString, nil
	}
	enc, err := multibase.EncoderByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %q", name)
	}
	return enc.Encode, nil
}

func (s *summer) hash() (hash.Hash, error) {
	h, err := s.alg.New(s.params)
	return h, errors.WithStack(err)
}

// sum digests one input, "-" being r.
func (s *summer) sum(name string, r io.Reader) (string, error) {
	h, err := s.hash()
	if err != nil {
		return "", err
	}
	if name == "-" {
		if _, err := io.Copy(h, r); err != nil {
			return "", errors.Wrap(err, "reading standard input")
		}
	} else if err := hashFile(h, name); err != nil {
		return "", err
	}

	digest := xhash.Finalize(h)
	if s.code != 0 {
		mh, err := gomultihash.Encode(digest, s.code)
		if err != nil {
			return "", errors.Wrap(err, "encoding multihash")
		}
		digest = mh
	}
	return s.encode(digest), nil
}

func run(w io.Writer, stdin io.Reader, o *options, files []string) error {
	s, err := newSummer(o)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	failed := 0
	for _, name := range files {
		out, err := s.sum(name, stdin)
		if err != nil {
			logrus.WithError(err).WithField("file", name).Error("hashing failed")
			failed++
			continue
		}
		logrus.WithFields(logrus.Fields{"file": name, "algo": s.alg.Name}).Debug("hashed")
		if _, err := fmt.Fprintf(w, "%s  %s\n", out, name); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d inputs failed", failed, len(files))
	}
	return nil
}

func streamFile(w io.Writer, f *os.File) error {
	_, err := io.Copy(w, f)
	return errors.Wrapf(err, "reading %s", f.Name())
}
