package stat

import (
	"fmt"
	"os"
	"time"
)

// Record is an opaque attribute bundle handed to the kernel verbatim
type Record struct {
	Mode  uint32
	Nlink uint32
	Uid   uint32
	Gid   uint32
	Size  int64
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
}

// WithSize returns a copy of r reporting size bytes
func (r Record) WithSize(size int) Record {
	r.Size = int64(size)
	return r
}

// IsDir reports whether the record describes a directory
func (r Record) IsDir() bool {
	return r.Mode&modeTypeMask == modeDir
}

// Templates holds the directory and file baselines sampled at startup
type Templates struct {
	Dir  Record
	File Record
}

// Sample creates an empty directory and an empty file under parent (the
// system temp directory when empty), records their metadata and removes
// both before returning, on success or failure.
func Sample(parent string) (Templates, error) {
	var templates Templates

	dir, err := os.MkdirTemp(parent, "horoscopefs-dir-")
	if err != nil {
		return templates, fmt.Errorf("creating sample directory: %w", err)
	}
	defer os.Remove(dir)

	templates.Dir, err = Lstat(dir)
	if err != nil {
		return templates, fmt.Errorf("sampling directory metadata: %w", err)
	}

	file, err := os.CreateTemp(parent, "horoscopefs-file-")
	if err != nil {
		return templates, fmt.Errorf("creating sample file: %w", err)
	}
	name := file.Name()
	defer os.Remove(name)
	if err := file.Close(); err != nil {
		return templates, fmt.Errorf("closing sample file: %w", err)
	}

	templates.File, err = Lstat(name)
	if err != nil {
		return templates, fmt.Errorf("sampling file metadata: %w", err)
	}

	return templates, nil
}

// DirectoryTemplate samples only the directory baseline
func DirectoryTemplate() (Record, error) {
	t, err := Sample("")
	return t.Dir, err
}

// FileTemplate samples only the file baseline
func FileTemplate() (Record, error) {
	t, err := Sample("")
	return t.File, err
}
