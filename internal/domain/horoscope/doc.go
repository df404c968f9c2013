// Package horoscope defines the closed vocabulary of the mount.
//
// Sources are the upstream websites (one directory each) and ContentTypes
// are the periodicities every Source offers (one file each). Both sets are
// fixed at build time and listed in declaration order.
//
// A Horoscope is the per-Source buffer set produced by warming: one
// immutable byte slice per ContentType, or Placeholder when the upstream
// fetch failed.
//
// Example Usage:
//
//	id := horoscope.NewIdentity("Aries", "Taurus")
//	h := horoscope.New(map[horoscope.ContentType][]byte{horoscope.Daily: text})
//	chunk := h.Slice(horoscope.Daily, 0, 4096)
package horoscope
