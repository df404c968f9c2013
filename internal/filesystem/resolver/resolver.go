package resolver

import (
	"strings"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
)

// Kind classifies a mount-relative path
type Kind int

const (
	Unrecognized Kind = iota
	Root
	SourceDir
	ContentFile
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case SourceDir:
		return "source-dir"
	case ContentFile:
		return "content-file"
	default:
		return "unrecognized"
	}
}

// Target is the result of classifying a path. Source is meaningful for
// SourceDir and ContentFile, Type only for ContentFile.
type Target struct {
	Kind   Kind
	Source horoscope.Source
	Type   horoscope.ContentType
}

const separator = "/"

// Classify resolves an absolute slash-separated path.
//
// Matching looks at the last segment only: a path whose final segment is a
// Source name is that Source's directory, and a path whose final segment is
// a ContentType name is that file of the Source named by the segment before
// it, whatever precedes them. "/a/b/Astrosage/daily" therefore resolves like
// "/Astrosage/daily". A ContentType segment whose parent segment is not a
// Source is Unrecognized.
func Classify(path string) Target {
	if path == separator {
		return Target{Kind: Root}
	}

	segments := strings.Split(path, separator)
	last := segments[len(segments)-1]

	if source, ok := horoscope.ParseSource(last); ok {
		return Target{Kind: SourceDir, Source: source}
	}

	if contentType, ok := horoscope.ParseContentType(last); ok && len(segments) >= 2 {
		if source, ok := horoscope.ParseSource(segments[len(segments)-2]); ok {
			return Target{Kind: ContentFile, Source: source, Type: contentType}
		}
	}

	return Target{Kind: Unrecognized}
}

// Join builds the path of name inside dir
func Join(dir, name string) string {
	if dir == separator || dir == "" {
		return separator + name
	}
	return dir + separator + name
}
