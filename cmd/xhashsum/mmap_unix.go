//go:build unix

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// hashFile writes the contents of the named file into w, mapping regular
// files into memory.
func hashFile(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return errors.WithStack(err)
	}
	size := fi.Size()
	if !fi.Mode().IsRegular() || size == 0 || size != int64(int(size)) {
		return streamFile(w, f)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		logrus.WithError(err).WithField("file", name).Debug("mmap failed, streaming")
		return streamFile(w, f)
	}
	defer func() { _ = unix.Munmap(data) }()

	_, err = w.Write(data)
	return errors.WithStack(err)
}
