package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testIdentity = horoscope.NewIdentity("aries", "aries")

func catalogOf(sites map[horoscope.Source]*testutil.MockSite) Catalog {
	catalog := make(Catalog, len(sites))
	for source, site := range sites {
		catalog[source] = site
	}
	return catalog
}

func newTestRegistry(t *testing.T, texts map[horoscope.ContentType][]byte, opts ...Option) (*Registry, map[horoscope.Source]*testutil.MockSite) {
	t.Helper()
	sites := testutil.MockSites(t, texts)
	r, err := New(catalogOf(sites), testIdentity, opts...)
	require.NoError(t, err)
	return r, sites
}

func TestNewRejectsIncompleteCatalog(t *testing.T) {
	sites := testutil.MockSites(t, nil)
	catalog := catalogOf(sites)
	delete(catalog, horoscope.AstroyogiCareer)

	_, err := New(catalog, testIdentity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteCatalog))
	assert.Contains(t, err.Error(), "AstroyogiCareer")
}

func TestNewRejectsUnknownSource(t *testing.T) {
	catalog := catalogOf(testutil.MockSites(t, nil))
	catalog[horoscope.Source(99)] = testutil.NewMockSite(t, nil)

	_, err := New(catalog, testIdentity)
	assert.Error(t, err)
}

func TestEnsureFetchesOnce(t *testing.T) {
	r, sites := newTestRegistry(t, testutil.Texts("d\n", "w\n", "m\n"))
	ctx := context.Background()

	assert.False(t, r.IsWarm(horoscope.Astrosage))

	r.Ensure(ctx, horoscope.Astrosage)
	r.Ensure(ctx, horoscope.Astrosage)
	_ = r.SizeOf(ctx, horoscope.Astrosage, horoscope.Monthly)

	testutil.AssertFetchCount(t, sites[horoscope.Astrosage], 1)
	testutil.AssertFetchCount(t, sites[horoscope.Astroyogi], 0)
	assert.True(t, r.IsWarm(horoscope.Astrosage))
	assert.Equal(t, []horoscope.Source{horoscope.Astrosage}, r.Warmed())
}

func TestPeekDoesNotWarm(t *testing.T) {
	r, sites := newTestRegistry(t, testutil.Texts("d\n", "w\n", "m\n"))

	h, ok := r.Peek(horoscope.Astroyogi)
	assert.False(t, ok)
	assert.Nil(t, h)
	testutil.AssertFetchCount(t, sites[horoscope.Astroyogi], 0)

	r.Ensure(context.Background(), horoscope.Astroyogi)

	h, ok = r.Peek(horoscope.Astroyogi)
	require.True(t, ok)
	assert.Equal(t, "w\n", string(h.Bytes(horoscope.Weekly)))

	_, ok = r.Peek(horoscope.Source(42))
	assert.False(t, ok)
}

func TestEnsurePassesIdentity(t *testing.T) {
	r, sites := newTestRegistry(t, testutil.Texts("d\n", "w\n", "m\n"))

	r.Ensure(context.Background(), horoscope.Astroyogi)

	sites[horoscope.Astroyogi].AssertCalled(t, "Fetch", mock.Anything, testIdentity)
	assert.Equal(t, testIdentity, r.Identity())
}

func TestEnsureIgnoresCancellation(t *testing.T) {
	site := new(testutil.MockSite)
	site.On("Fetch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		assert.NoError(t, ctx.Err(), "fetch must not observe caller cancellation")
	}).Return(testutil.Texts("d\n", "w\n", "m\n"))

	catalog := catalogOf(testutil.MockSites(t, nil))
	catalog[horoscope.Astrosage] = site
	r, err := New(catalog, testIdentity)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 2, r.SizeOf(ctx, horoscope.Astrosage, horoscope.Daily))
}

func TestSizeOfAndSlice(t *testing.T) {
	r, _ := newTestRegistry(t, testutil.Texts("abcdefgh\n", "weekly\n", ""))
	ctx := context.Background()

	assert.Equal(t, 9, r.SizeOf(ctx, horoscope.Astrosage, horoscope.Daily))
	assert.Equal(t, []byte("fgh"), r.Slice(ctx, horoscope.Astrosage, horoscope.Daily, 5, 3))
	assert.Equal(t, []byte{}, r.Slice(ctx, horoscope.Astrosage, horoscope.Daily, 9, 3))
	assert.Equal(t, []byte("h\n"), r.Slice(ctx, horoscope.Astrosage, horoscope.Daily, 7, 100))

	// an empty text degrades to the placeholder
	assert.Equal(t, horoscope.Placeholder, r.Slice(ctx, horoscope.Astrosage, horoscope.Monthly, 0, 1<<20))
	assert.Equal(t, len(horoscope.Placeholder), r.SizeOf(ctx, horoscope.Astrosage, horoscope.Monthly))
}

func TestRepeatedReadsAreIdentical(t *testing.T) {
	r, _ := newTestRegistry(t, testutil.Texts("daily text\n", "weekly text\n", "monthly text\n"))
	ctx := context.Background()

	for _, source := range horoscope.Sources() {
		for _, ct := range horoscope.ContentTypes() {
			first := r.Slice(ctx, source, ct, 0, 4096)
			second := r.Slice(ctx, source, ct, 0, 4096)
			assert.Equal(t, first, second)
		}
	}
}

func TestFailingSiteServesPlaceholder(t *testing.T) {
	sites := testutil.MockSites(t, nil)
	sites[horoscope.IndianAstrology2000] = testutil.NewFailingSite(t)
	r, err := New(catalogOf(sites), testIdentity)
	require.NoError(t, err)

	ctx := context.Background()
	for _, ct := range horoscope.ContentTypes() {
		assert.Equal(t, horoscope.Placeholder, r.Slice(ctx, horoscope.IndianAstrology2000, ct, 0, 1<<20))
		assert.Equal(t, len(horoscope.Placeholder), r.SizeOf(ctx, horoscope.IndianAstrology2000, ct))
	}
}

func TestPanickingSiteIsContained(t *testing.T) {
	site := new(testutil.MockSite)
	site.On("Fetch", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil)

	catalog := catalogOf(testutil.MockSites(t, nil))
	catalog[horoscope.Astroyogi] = site

	var recovered error
	r, err := New(catalog, testIdentity, WithPanicHook(func(source horoscope.Source, err error) {
		assert.Equal(t, horoscope.Astroyogi, source)
		recovered = err
	}))
	require.NoError(t, err)

	got := r.Slice(context.Background(), horoscope.Astroyogi, horoscope.Daily, 0, 100)
	assert.Equal(t, horoscope.Placeholder, got)
	require.Error(t, recovered)
	assert.Contains(t, recovered.Error(), "boom")

	// the placeholder is cached like any other result
	r.Ensure(context.Background(), horoscope.Astroyogi)
	site.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestWarmHook(t *testing.T) {
	var warmed []horoscope.Source
	r, _ := newTestRegistry(t, testutil.Texts("d\n", "w\n", "m\n"),
		WithWarmHook(func(source horoscope.Source, elapsed time.Duration) {
			assert.GreaterOrEqual(t, elapsed, time.Duration(0))
			warmed = append(warmed, source)
		}))

	r.WarmAll(context.Background())
	r.WarmAll(context.Background())

	assert.Equal(t, horoscope.Sources(), warmed)
	assert.Equal(t, horoscope.Sources(), r.Warmed())
}

func TestInvalidSource(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	ctx := context.Background()

	r.Ensure(ctx, horoscope.Source(-1))
	assert.Nil(t, r.Get(ctx, horoscope.Source(42)))
	assert.False(t, r.IsWarm(horoscope.Source(42)))
	assert.Equal(t, len(horoscope.Placeholder), r.SizeOf(ctx, horoscope.Source(42), horoscope.Daily))
}

func TestConcurrentEnsureFetchesOnce(t *testing.T) {
	release := make(chan struct{})
	site := new(testutil.MockSite)
	site.On("Fetch", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(testutil.Texts("d\n", "w\n", "m\n"))

	catalog := catalogOf(testutil.MockSites(t, nil))
	catalog[horoscope.Astrosage] = site
	r, err := New(catalog, testIdentity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ensure(context.Background(), horoscope.Astrosage)
		}()
	}
	close(release)
	wg.Wait()

	site.AssertNumberOfCalls(t, "Fetch", 1)
}
