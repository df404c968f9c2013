// Package providers groups the content providers that fill the mount.
//
// Each Source directory is backed by a horoscope website. Providers are
// layered bottom-up:
//   - http/client: rate-limited, retrying GET client with a circuit breaker per host
//   - scraper: charset detection, CSS and XPath selection, plain-text wrapping
//   - sites: one Site per Source mapping content types to pages and selectors
//
// Example Usage:
//
//	getter := client.New(client.DefaultOptions())
//	catalog := sites.Catalog(getter, sites.DefaultEndpoints())
//	reg, err := registry.New(catalog, identity)
package providers
