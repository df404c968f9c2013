// Package resolver maps mount-relative paths onto the virtual layout
//
//	/                      Root
//	/<Source>              SourceDir
//	/<Source>/<Type>       ContentFile
//
// Classification is by suffix, not by full structural validation. Keeping
// that policy behind Classify lets it be tightened without touching the
// dispatcher.
package resolver
