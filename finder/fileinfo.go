package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"
)

// Stat returns metadata for a guarded path relative to the base.
func (f *Finder) Stat(rel string) (FileInfo, error) {
	full, err := f.Resolve(rel)
	if err != nil {
		return FileInfo{}, err
	}

	info, err := os.Stat(full)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, rel)
	}

	timespec, err := times.Stat(full)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to get file times: %w", err)
	}

	created := time.Time{}
	if timespec.HasBirthTime() {
		created = timespec.BirthTime()
	}

	relPath, err := f.relative(full)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Name:     filepath.Base(full),
		Path:     relPath,
		Size:     info.Size(),
		Created:  created,
		Modified: timespec.ModTime(),
		Accessed: timespec.AccessTime(),
		MIMEType: DetectMIME(full),
	}, nil
}

// DetectMIME sniffs the content type of a file, falling back to a generic
// binary type when the file cannot be read.
func DetectMIME(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}
