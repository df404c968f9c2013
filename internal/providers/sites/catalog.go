package sites

import (
	"strings"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/registry"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/scraper"
)

// Endpoints holds the base URL of every website. Tests point them at a
// local server.
type Endpoints struct {
	Astrosage           string
	Astroyogi           string
	IndianAstrology2000 string
}

// DefaultEndpoints returns the public websites
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Astrosage:           "http://www.astrosage.com/horoscope",
		Astroyogi:           "https://www.astroyogi.com/horoscopes",
		IndianAstrology2000: "https://www.indianastrology2000.com/horoscope",
	}
}

// Option configures the sites of a catalog
type Option func(*site)

// WithHook reports every fetch outcome to fn
func WithHook(fn Hook) Option {
	return func(s *site) {
		s.hook = fn
	}
}

// WithConcurrency bounds how many pages of one Source are fetched at once
func WithConcurrency(n int) Option {
	return func(s *site) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithWidth sets the fill column of extracted text
func WithWidth(width int) Option {
	return func(s *site) {
		if width > 0 {
			s.width = width
		}
	}
}

// Catalog binds every Source to the Site that scrapes it
func Catalog(getter Getter, endpoints Endpoints, opts ...Option) registry.Catalog {
	build := func(source horoscope.Source, locate locator, extract extractor) registry.Site {
		s := &site{
			source:      source,
			getter:      getter,
			locate:      locate,
			extract:     extract,
			concurrency: DefaultConcurrency,
			width:       scraper.DefaultWidth,
		}
		for _, opt := range opts {
			opt(s)
		}
		return s
	}

	astrosageBase := strings.TrimSuffix(endpoints.Astrosage, "/")
	astroyogiBase := strings.TrimSuffix(endpoints.Astroyogi, "/")
	indianBase := strings.TrimSuffix(endpoints.IndianAstrology2000, "/")

	catalog := registry.Catalog{}

	locate, extract := astrosage(astrosageBase)
	catalog[horoscope.Astrosage] = build(horoscope.Astrosage, locate, extract)

	locate, extract = astroyogi(astroyogiBase, "free")
	catalog[horoscope.Astroyogi] = build(horoscope.Astroyogi, locate, extract)

	locate, extract = astroyogi(astroyogiBase, "career")
	catalog[horoscope.AstroyogiCareer] = build(horoscope.AstroyogiCareer, locate, extract)

	locate, extract = indianAstrology2000(indianBase)
	catalog[horoscope.IndianAstrology2000] = build(horoscope.IndianAstrology2000, locate, extract)

	return catalog
}
