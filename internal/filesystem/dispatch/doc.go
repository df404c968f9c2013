// Package dispatch implements the externally visible operations of the
// mount: attribute query, directory listing, open and read.
//
// Every operation classifies its path with the resolver first. Source
// directories and content files are synthesized from the stat templates
// and the provider registry; every other path is passed through to the
// host's own metadata lookup. Only the root is expected to exist there,
// so other unrecognized paths usually fail with "no such file".
package dispatch
