package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/registry"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/resolver"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/stat"
)

var (
	ErrNotDir   = errors.New("not a directory")
	ErrIsDir    = errors.New("is a directory")
	ErrReadOnly = errors.New("read-only filesystem")
)

// Operation names reported to the operation hook
const (
	OpGetattr = "getattr"
	OpReaddir = "readdir"
	OpRead    = "read"
	OpOpen    = "open"
)

var dotEntries = []string{".", ".."}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLstat replaces the host metadata query used for paths outside the
// virtual layout
func WithLstat(fn func(path string) (stat.Record, error)) Option {
	return func(d *Dispatcher) {
		d.lstat = fn
	}
}

// WithOperationHook is called for every dispatched operation
func WithOperationHook(fn func(op string, kind resolver.Kind)) Option {
	return func(d *Dispatcher) {
		d.onOperation = fn
	}
}

// Dispatcher implements the filesystem operations of the mount on top of
// the path resolver and the provider registry
type Dispatcher struct {
	registry  *registry.Registry
	templates stat.Templates
	lstat     func(string) (stat.Record, error)

	onOperation func(string, resolver.Kind)
}

// New creates a dispatcher serving content from reg with the given stat
// baselines
func New(reg *registry.Registry, templates stat.Templates, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		templates: templates,
		lstat:     stat.Lstat,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) classify(op, path string) resolver.Target {
	target := resolver.Classify(path)
	if d.onOperation != nil {
		d.onOperation(op, target.Kind)
	}
	return target
}

// Getattr returns the attributes of path. Source directories use the
// directory template and content files the file template sized to their
// content, warming the Source first. Anything else, the root included, is
// answered by the host for the literal path.
func (d *Dispatcher) Getattr(ctx context.Context, path string) (stat.Record, error) {
	target := d.classify(OpGetattr, path)

	switch target.Kind {
	case resolver.SourceDir:
		return d.templates.Dir, nil
	case resolver.ContentFile:
		d.registry.Ensure(ctx, target.Source)
		size := d.registry.SizeOf(ctx, target.Source, target.Type)
		return d.templates.File.WithSize(size), nil
	default:
		return d.lstat(path)
	}
}

// Readdir lists path. Listings are in declaration order and always include
// the self and parent entries first.
func (d *Dispatcher) Readdir(ctx context.Context, path string) ([]string, error) {
	target := d.classify(OpReaddir, path)

	switch target.Kind {
	case resolver.Root:
		return append(append([]string(nil), dotEntries...), horoscope.SourceNames()...), nil
	case resolver.SourceDir:
		return append(append([]string(nil), dotEntries...), horoscope.ContentTypeNames()...), nil
	case resolver.ContentFile:
		return nil, fmt.Errorf("readdir %s: %w", path, ErrNotDir)
	default:
		return nil, notExist("readdir", path)
	}
}

// Open checks that path can be opened with flags and warms its Source so
// that subsequent reads are served from memory
func (d *Dispatcher) Open(ctx context.Context, path string, flags int) error {
	target := d.classify(OpOpen, path)

	switch target.Kind {
	case resolver.ContentFile:
		if flags&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_TRUNC) != 0 {
			return fmt.Errorf("open %s: %w", path, ErrReadOnly)
		}
		d.registry.Ensure(ctx, target.Source)
		return nil
	case resolver.Root, resolver.SourceDir:
		return fmt.Errorf("open %s: %w", path, ErrIsDir)
	default:
		return notExist("open", path)
	}
}

// Read returns up to length bytes of path starting at offset. Reads past
// the end of the content return a short or empty slice, never an error.
func (d *Dispatcher) Read(ctx context.Context, path string, length int, offset int64) ([]byte, error) {
	target := d.classify(OpRead, path)

	switch target.Kind {
	case resolver.ContentFile:
		// The host normally stats before reading, but ordering is not
		// guaranteed to this layer.
		d.registry.Ensure(ctx, target.Source)
		return d.registry.Slice(ctx, target.Source, target.Type, offset, length), nil
	case resolver.Root, resolver.SourceDir:
		return nil, fmt.Errorf("read %s: %w", path, ErrIsDir)
	default:
		return nil, notExist("read", path)
	}
}

// Registry returns the registry the dispatcher serves from
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

func notExist(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
}
