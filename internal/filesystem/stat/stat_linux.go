package stat

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	modeTypeMask = unix.S_IFMT
	modeDir      = unix.S_IFDIR
)

// Lstat queries the host for the metadata of path without following links
func Lstat(path string) (Record, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Record{}, &os.PathError{Op: "lstat", Path: path, Err: err}
	}
	return fromUnix(&st), nil
}

func fromUnix(st *unix.Stat_t) Record {
	return Record{
		Mode:  st.Mode,
		Nlink: uint32(st.Nlink),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Size:  st.Size,
		Atime: time.Unix(st.Atim.Unix()),
		Mtime: time.Unix(st.Mtim.Unix()),
		Ctime: time.Unix(st.Ctim.Unix()),
	}
}
