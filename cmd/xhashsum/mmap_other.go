//go:build !unix

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

func hashFile(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return streamFile(w, f)
}
