package finder

import (
	"bytes"
	"io"
	"os"
)

// spool buffers writes in memory up to limit bytes, then moves everything to
// a temporary file. It is request-scoped and never shared.
type spool struct {
	limit int64
	buf   bytes.Buffer
	file  *os.File
	size  int64
}

func (s *spool) Write(p []byte) (int, error) {
	if s.file == nil && int64(s.buf.Len()+len(p)) > s.limit {
		if err := s.spill(); err != nil {
			return 0, err
		}
	}

	var (
		n   int
		err error
	)
	if s.file != nil {
		n, err = s.file.Write(p)
	} else {
		n, err = s.buf.Write(p)
	}
	s.size += int64(n)
	return n, err
}

func (s *spool) spill() error {
	file, err := os.CreateTemp("", "recording-finder-*.zip")
	if err != nil {
		return err
	}
	if _, err := file.Write(s.buf.Bytes()); err != nil {
		file.Close()
		os.Remove(file.Name())
		return err
	}
	s.buf = bytes.Buffer{}
	s.file = file
	return nil
}

// Size is the number of bytes written so far.
func (s *spool) Size() int64 { return s.size }

// onDisk reports whether the spool spilled to a temporary file.
func (s *spool) onDisk() bool { return s.file != nil }

// reader rewinds the spool for reading from the start.
func (s *spool) reader() (io.Reader, error) {
	if s.file == nil {
		return bytes.NewReader(s.buf.Bytes()), nil
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return s.file, nil
}

// Close releases the buffer and removes the temporary file, if any.
func (s *spool) Close() error {
	s.buf = bytes.Buffer{}
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	err := s.file.Close()
	if rmErr := os.Remove(name); err == nil {
		err = rmErr
	}
	s.file = nil
	return err
}
