// horoscopefs mounts a read-only FUSE filesystem aggregating horoscopes
// from several websites.
//
// Usage:
//
//	horoscopefs [flags] <mountpoint> <sun sign> <moon sign>
//
// The mount lists one directory per website, each holding a daily, weekly
// and monthly file. Signs are case-insensitive. The process stays in the
// foreground until it is interrupted or the mount is released with
// fusermount -u.
package main
