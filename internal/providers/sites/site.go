package sites

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/scraper"
	"golang.org/x/sync/errgroup"
)

// ErrUnavailable marks a ContentType a Source never publishes
var ErrUnavailable = errors.New("content type not published by source")

// DefaultConcurrency is how many pages of one Source are fetched at once
const DefaultConcurrency = 3

// Getter downloads a page
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Hook observes the outcome of every ContentType of a warm. err is nil on
// success, ErrUnavailable for content the Source does not publish, and the
// fetch or extraction error otherwise. It may be called concurrently.
type Hook func(source horoscope.Source, t horoscope.ContentType, err error)

// locator returns the page URL for a ContentType, or false when the Source
// does not publish it
type locator func(id horoscope.Identity, t horoscope.ContentType) (string, bool)

// extractor pulls the horoscope text out of a page
type extractor func(page []byte, t horoscope.ContentType) (string, error)

// site is a Content Provider scraping one website
type site struct {
	source      horoscope.Source
	getter      Getter
	locate      locator
	extract     extractor
	hook        Hook
	concurrency int
	width       int
}

// Fetch downloads and extracts every ContentType. Failures are reported to
// the hook and degrade to the placeholder.
func (s *site) Fetch(ctx context.Context, id horoscope.Identity) map[horoscope.ContentType][]byte {
	var texts [horoscope.NumContentTypes][]byte

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, t := range horoscope.ContentTypes() {
		url, ok := s.locate(id, t)
		if !ok {
			texts[t] = horoscope.Placeholder
			s.report(t, ErrUnavailable)
			continue
		}

		g.Go(func() error {
			texts[t] = s.fetch(ctx, url, t)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[horoscope.ContentType][]byte, horoscope.NumContentTypes)
	for _, t := range horoscope.ContentTypes() {
		out[t] = texts[t]
	}
	return out
}

func (s *site) fetch(ctx context.Context, url string, t horoscope.ContentType) []byte {
	page, err := s.getter.Get(ctx, url)
	if err != nil {
		s.report(t, err)
		return horoscope.Placeholder
	}

	text, err := s.extract(page, t)
	if err != nil {
		s.report(t, fmt.Errorf("extracting %s from %s: %w", t, url, err))
		return horoscope.Placeholder
	}

	s.report(t, nil)
	return scraper.Fill(text, s.width)
}

func (s *site) report(t horoscope.ContentType, err error) {
	if s.hook != nil {
		s.hook(s.source, t, err)
	}
}
