// Package sites implements the Content Providers of every horoscope Source.
//
// Each Site downloads the page of every ContentType through a Getter,
// extracts the horoscope text and fills it to 70 columns:
//   - Astrosage: moon sign, CSS class selection
//   - Astroyogi and AstroyogiCareer: sun sign, leading text of the
//     prediction element via XPath
//   - IndianAstrology2000: moon sign, daily and monthly only
//
// A page that cannot be downloaded or does not contain the expected element
// yields the placeholder. Fetch never fails.
//
// Example Usage:
//
//	catalog := sites.Catalog(client.New(opts), sites.DefaultEndpoints(),
//		sites.WithHook(func(source horoscope.Source, t horoscope.ContentType, err error) {
//			metrics.RecordFetch(source, t, err)
//		}),
//	)
package sites
