package finder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/recfinder/recording-finder/logger"
)

// Archive is a finished zip batch held in a spool.
type Archive struct {
	spool *spool
	// Entries are the names written to the zip, in request order.
	Entries []string
	// Skipped counts requested paths left out: outside the base or missing.
	Skipped int
}

// Size is the exact byte length of the archive.
func (a *Archive) Size() int64 { return a.spool.Size() }

// WriteTo streams the archive from its first byte.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	r, err := a.spool.reader()
	if err != nil {
		return 0, err
	}
	return io.Copy(w, r)
}

// Close releases the archive's memory or temporary file.
func (a *Archive) Close() error { return a.spool.Close() }

// BuildArchive zips the files named by paths, relative to the base. Every path
// goes through Resolve; paths outside the base or not naming a regular file
// are left out without error. Entries sit at the root of the zip under their
// base name, with clashes renamed "name (2).ext", "name (3).ext" and so on.
func (f *Finder) BuildArchive(ctx context.Context, paths []string) (*Archive, error) {
	a := &Archive{spool: &spool{limit: f.zipMemory}, Entries: []string{}}
	zw := zip.NewWriter(a.spool)
	used := make(map[string]int)

	fail := func(err error) (*Archive, error) {
		zw.Close()
		a.Close()
		return nil, err
	}

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		full, err := f.Resolve(rel)
		if err != nil {
			f.log.Debug("skipping archive entry", logger.String("path", rel), logger.Error(err))
			a.Skipped++
			continue
		}

		file, err := os.Open(full)
		if err != nil {
			f.log.Debug("skipping archive entry", logger.String("path", rel), logger.Error(err))
			a.Skipped++
			continue
		}

		name := dedupName(filepath.Base(full), used)
		err = addEntry(zw, file, name)
		file.Close()
		if err != nil {
			return fail(fmt.Errorf("failed to add %s to archive: %w", rel, err))
		}
		a.Entries = append(a.Entries, name)
	}

	if err := zw.Close(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	if a.spool.onDisk() {
		f.log.Debug("archive spilled to disk", logger.Int64("size", a.Size()))
	}
	return a, nil
}

func addEntry(zw *zip.Writer, file *os.File, name string) error {
	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}

// dedupName returns name the first time it is seen and "stem (n)ext" after
// that, where n counts up from 2 and skips names already handed out.
func dedupName(name string, used map[string]int) string {
	count, seen := used[name]
	if !seen {
		used[name] = 1
		return name
	}

	stem, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}
	for {
		count++
		used[name] = count
		candidate := fmt.Sprintf("%s (%d)%s", stem, count, ext)
		if _, taken := used[candidate]; !taken {
			used[candidate] = 1
			return candidate
		}
	}
}
