// Package stat synthesizes the attribute records served for the virtual
// directories and files of the mount.
//
// Templates are captured once at startup from a real, immediately removed
// empty directory and empty file so that permission bits, ownership,
// timestamps and link counts look native to the host. The file template's
// size is overridden per request with the actual content length.
package stat
