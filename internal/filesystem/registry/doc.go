// Package registry owns the per-Source content of a mount session.
//
// Each Source is warmed on first touch: its Site fetches every ContentType
// at once and the resulting Horoscope is kept for the rest of the session.
// Subsequent size and read queries are in-memory lookups. Warming is
// serialized per Source, so concurrent FUSE workers never fetch a Source
// twice; there is no ordering between different Sources.
//
// Example Usage:
//
//	reg, err := registry.New(sites.Catalog(c, sites.DefaultEndpoints()), id)
//	size := reg.SizeOf(ctx, horoscope.Astrosage, horoscope.Daily)
package registry
