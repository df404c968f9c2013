package mount

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/dispatch"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/resolver"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/stat"
	"github.com/GriffinCanCode/horoscopefs/internal/logging"
	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"go.uber.org/zap"
)

// DefaultAttrTimeout is how long the kernel may cache attributes and entries
const DefaultAttrTimeout = time.Second

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	Mountpoint string

	// Dispatcher answers every filesystem request.
	Dispatcher *dispatch.Dispatcher

	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// SingleThreaded serves one request at a time. A slow upstream fetch
	// then blocks the whole mount until it completes or times out.
	SingleThreaded bool

	// Debug logs every FUSE request and reply.
	Debug bool

	// AttrTimeout bounds kernel caching of entries and attributes. Zero
	// uses DefaultAttrTimeout.
	AttrTimeout time.Duration

	// Logger receives diagnostic messages. If nil, a no-op logger is used.
	Logger *logging.Logger
}

// Mount mounts the filesystem at the configured mountpoint. The caller must
// call Unmount on the returned server when done.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if options.AttrTimeout == 0 {
		options.AttrTimeout = DefaultAttrTimeout
	}
	if options.Logger == nil {
		options.Logger = logging.NewNop()
	}

	info, err := os.Stat(options.Mountpoint)
	if err != nil {
		return nil, fmt.Errorf("checking mountpoint %s: %w", options.Mountpoint, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mountpoint %s is not a directory", options.Mountpoint)
	}

	root := &node{options: &options}

	attrTimeout := options.AttrTimeout
	negativeTimeout := options.AttrTimeout

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &attrTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:         "horoscopefs",
			Name:           "horoscopefs",
			AllowOther:     options.AllowOther,
			SingleThreaded: options.SingleThreaded,
			Debug:          options.Debug,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("horoscope filesystem mounted", zap.String("mountpoint", options.Mountpoint))
	return server, nil
}

// node is every inode of the mount. It carries no state of its own: each
// request is resolved from the node's path by the dispatcher.
type node struct {
	gofuse.Inode
	options *Options
}

var _ gofuse.InodeEmbedder = (*node)(nil)
var _ gofuse.NodeLookuper = (*node)(nil)
var _ gofuse.NodeReaddirer = (*node)(nil)
var _ gofuse.NodeGetattrer = (*node)(nil)
var _ gofuse.NodeOpener = (*node)(nil)
var _ gofuse.NodeReader = (*node)(nil)

func (n *node) path() string {
	return "/" + n.Path(nil)
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	path := resolver.Join(n.path(), name)

	record, err := n.options.Dispatcher.Getattr(ctx, path)
	if err != nil {
		return nil, n.errno("lookup", path, err)
	}

	fillAttr(&out.Attr, record)
	child := n.NewInode(ctx, &node{options: n.options}, gofuse.StableAttr{Mode: record.Mode & syscall.S_IFMT})
	return child, 0
}

func (n *node) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	path := n.path()

	names, err := n.options.Dispatcher.Readdir(ctx, path)
	if err != nil {
		return nil, n.errno("readdir", path, err)
	}

	return &sliceDirStream{entries: dirEntries(path, names)}, 0
}

func (n *node) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	path := n.path()

	record, err := n.options.Dispatcher.Getattr(ctx, path)
	if err != nil {
		return n.errno("getattr", path, err)
	}

	fillAttr(&out.Attr, record)
	return 0
}

func (n *node) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	path := n.path()

	if err := n.options.Dispatcher.Open(ctx, path, int(flags)); err != nil {
		return nil, 0, n.errno("open", path, err)
	}

	// Content never changes during a session, so the page cache stays valid.
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, f gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	path := n.path()

	data, err := n.options.Dispatcher.Read(ctx, path, len(dest), off)
	if err != nil {
		return nil, n.errno("read", path, err)
	}

	return fuse.ReadResultData(data), 0
}

func (n *node) errno(op, path string, err error) syscall.Errno {
	errno := toErrno(err)
	if errno == syscall.EIO {
		n.options.Logger.Error("filesystem operation failed",
			zap.String("op", op),
			zap.String("path", path),
			zap.Error(err),
		)
	} else {
		n.options.Logger.Debug("filesystem operation rejected",
			zap.String("op", op),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return errno
}

// toErrno maps dispatcher and host errors onto kernel error numbers.
func toErrno(err error) syscall.Errno {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, dispatch.ErrNotDir):
		return syscall.ENOTDIR
	case errors.Is(err, dispatch.ErrIsDir):
		return syscall.EISDIR
	case errors.Is(err, dispatch.ErrReadOnly):
		return syscall.EROFS
	case errors.Is(err, fs.ErrPermission):
		return syscall.EACCES
	default:
		return syscall.EIO
	}
}

// fillAttr copies a synthetic stat record into a kernel attribute reply.
func fillAttr(out *fuse.Attr, record stat.Record) {
	out.Mode = record.Mode
	out.Nlink = record.Nlink
	out.Owner = fuse.Owner{Uid: record.Uid, Gid: record.Gid}
	if record.Size > 0 {
		out.Size = uint64(record.Size)
	} else {
		out.Size = 0
	}
	out.Blocks = (out.Size + 511) / 512
	out.Atime, out.Atimensec = splitTime(record.Atime)
	out.Mtime, out.Mtimensec = splitTime(record.Mtime)
	out.Ctime, out.Ctimensec = splitTime(record.Ctime)
}

func splitTime(t time.Time) (uint64, uint32) {
	if t.IsZero() || t.Unix() < 0 {
		return 0, 0
	}
	return uint64(t.Unix()), uint32(t.Nanosecond())
}

// dirEntries converts a dispatcher listing into kernel directory entries.
// The self and parent entries are dropped because go-fuse adds its own.
func dirEntries(dir string, names []string) []fuse.DirEntry {
	entries := make([]fuse.DirEntry, 0, len(names))
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}

		mode := uint32(syscall.S_IFDIR)
		if resolver.Classify(resolver.Join(dir, name)).Kind == resolver.ContentFile {
			mode = syscall.S_IFREG
		}

		entries = append(entries, fuse.DirEntry{Name: name, Mode: mode})
	}
	return entries
}

// sliceDirStream implements fs.DirStream from a slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}
