package horoscope

import "strings"

// Source identifies one upstream horoscope website
type Source int

const (
	Astrosage Source = iota
	Astroyogi
	AstroyogiCareer
	IndianAstrology2000

	// NumSources is the size of the closed Source set
	NumSources = int(iota)
)

var sourceNames = [NumSources]string{
	Astrosage:           "Astrosage",
	Astroyogi:           "Astroyogi",
	AstroyogiCareer:     "AstroyogiCareer",
	IndianAstrology2000: "IndianAstrology2000",
}

// String returns the directory name of the source
func (s Source) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sourceNames[s]
}

// Valid reports whether s belongs to the closed Source set
func (s Source) Valid() bool {
	return s >= 0 && int(s) < NumSources
}

// Sources returns every Source in listing order
func Sources() []Source {
	out := make([]Source, NumSources)
	for i := range out {
		out[i] = Source(i)
	}
	return out
}

// SourceNames returns the directory names of every Source in listing order
func SourceNames() []string {
	return append([]string(nil), sourceNames[:]...)
}

// ParseSource looks up a Source by its exact directory name
func ParseSource(name string) (Source, bool) {
	for i, n := range sourceNames {
		if n == name {
			return Source(i), true
		}
	}
	return 0, false
}

// ContentType identifies one periodicity offered by every Source
type ContentType int

const (
	Daily ContentType = iota
	Weekly
	Monthly

	// NumContentTypes is the size of the closed ContentType set
	NumContentTypes = int(iota)
)

var contentTypeNames = [NumContentTypes]string{
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
}

// String returns the file name of the content type
func (t ContentType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return contentTypeNames[t]
}

// Valid reports whether t belongs to the closed ContentType set
func (t ContentType) Valid() bool {
	return t >= 0 && int(t) < NumContentTypes
}

// ContentTypes returns every ContentType in listing order
func ContentTypes() []ContentType {
	out := make([]ContentType, NumContentTypes)
	for i := range out {
		out[i] = ContentType(i)
	}
	return out
}

// ContentTypeNames returns the file names of every ContentType in listing order
func ContentTypeNames() []string {
	return append([]string(nil), contentTypeNames[:]...)
}

// ParseContentType looks up a ContentType by its exact file name
func ParseContentType(name string) (ContentType, bool) {
	for i, n := range contentTypeNames {
		if n == name {
			return ContentType(i), true
		}
	}
	return 0, false
}

// Identity holds the two signs a mount session was started with
type Identity struct {
	SunSign  string
	MoonSign string
}

// NewIdentity case-folds both signs
func NewIdentity(sunSign, moonSign string) Identity {
	return Identity{
		SunSign:  strings.ToLower(strings.TrimSpace(sunSign)),
		MoonSign: strings.ToLower(strings.TrimSpace(moonSign)),
	}
}
