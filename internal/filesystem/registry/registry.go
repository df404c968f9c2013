package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
)

var ErrIncompleteCatalog = errors.New("catalog does not cover every source")

// Site is the Content Provider of one Source. Fetch must not fail: every
// content type it cannot produce is returned as the placeholder, or left
// out and filled in by the registry.
type Site interface {
	Fetch(ctx context.Context, id horoscope.Identity) map[horoscope.ContentType][]byte
}

// Catalog is the static Source to Site binding the mount is built from
type Catalog map[horoscope.Source]Site

// Validate checks that every Source has a Site
func (c Catalog) Validate() error {
	for _, source := range horoscope.Sources() {
		if c[source] == nil {
			return fmt.Errorf("%w: missing %s", ErrIncompleteCatalog, source)
		}
	}
	return nil
}

// Option configures a Registry
type Option func(*Registry)

// WithWarmHook is called once per Source after its Horoscope was built
func WithWarmHook(fn func(source horoscope.Source, elapsed time.Duration)) Option {
	return func(r *Registry) {
		r.onWarm = fn
	}
}

// WithPanicHook receives the value recovered from a Site that panicked
// while warming. The Source is then served placeholders for the session.
func WithPanicHook(fn func(source horoscope.Source, err error)) Option {
	return func(r *Registry) {
		r.onPanic = fn
	}
}

// slot owns the Horoscope of one Source. mu serializes warming so that a
// Source is fetched at most once even with concurrent FUSE workers.
type slot struct {
	mu        sync.Mutex
	horoscope *horoscope.Horoscope
}

// Registry lazily builds and caches one Horoscope per Source for the
// lifetime of a mount. Entries are never refreshed or evicted.
type Registry struct {
	identity horoscope.Identity
	sites    [horoscope.NumSources]Site
	slots    [horoscope.NumSources]slot

	onWarm  func(horoscope.Source, time.Duration)
	onPanic func(horoscope.Source, error)
}

// New creates a registry over catalog for the given identity
func New(catalog Catalog, identity horoscope.Identity, opts ...Option) (*Registry, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{identity: identity}
	for source, site := range catalog {
		if !source.Valid() {
			return nil, fmt.Errorf("catalog entry for unknown source %d", int(source))
		}
		r.sites[source] = site
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Identity returns the signs the registry fetches for
func (r *Registry) Identity() horoscope.Identity {
	return r.identity
}

// Ensure warms source if it has not been warmed yet. It blocks until every
// ContentType of the Source has been fetched. Cancellation of ctx does not
// abort a fetch in flight; fetches run to completion or to their own timeout.
func (r *Registry) Ensure(ctx context.Context, source horoscope.Source) {
	if !source.Valid() {
		return
	}

	s := &r.slots[source]
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.horoscope != nil {
		return
	}

	start := time.Now()
	s.horoscope = r.build(context.WithoutCancel(ctx), source)
	if r.onWarm != nil {
		r.onWarm(source, time.Since(start))
	}
}

func (r *Registry) build(ctx context.Context, source horoscope.Source) (h *horoscope.Horoscope) {
	defer func() {
		if v := recover(); v != nil {
			if r.onPanic != nil {
				r.onPanic(source, fmt.Errorf("site %s panicked: %v", source, v))
			}
			h = horoscope.New(nil)
		}
	}()

	return horoscope.New(r.sites[source].Fetch(ctx, r.identity))
}

// Get warms source if needed and returns its Horoscope
func (r *Registry) Get(ctx context.Context, source horoscope.Source) *horoscope.Horoscope {
	if !source.Valid() {
		return nil
	}
	r.Ensure(ctx, source)

	s := &r.slots[source]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.horoscope
}

// SizeOf returns the length of the text cached for (source, t)
func (r *Registry) SizeOf(ctx context.Context, source horoscope.Source, t horoscope.ContentType) int {
	return r.Get(ctx, source).Len(t)
}

// Slice returns the byte range [offset, offset+length) of the text cached
// for (source, t), clamped to its end
func (r *Registry) Slice(ctx context.Context, source horoscope.Source, t horoscope.ContentType, offset int64, length int) []byte {
	return r.Get(ctx, source).Slice(t, offset, length)
}

// Peek returns the Horoscope of source without warming it. It blocks while
// the Source is being warmed.
func (r *Registry) Peek(source horoscope.Source) (*horoscope.Horoscope, bool) {
	if !source.Valid() {
		return nil, false
	}

	s := &r.slots[source]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.horoscope, s.horoscope != nil
}

// IsWarm reports whether source has already been built
func (r *Registry) IsWarm(source horoscope.Source) bool {
	_, ok := r.Peek(source)
	return ok
}

// Warmed returns the Sources built so far in listing order
func (r *Registry) Warmed() []horoscope.Source {
	var warmed []horoscope.Source
	for _, source := range horoscope.Sources() {
		if r.IsWarm(source) {
			warmed = append(warmed, source)
		}
	}
	return warmed
}

// WarmAll builds every Source up front, one after another
func (r *Registry) WarmAll(ctx context.Context) {
	for _, source := range horoscope.Sources() {
		r.Ensure(ctx, source)
	}
}
