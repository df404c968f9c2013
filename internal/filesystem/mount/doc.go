// Package mount binds the dispatcher to the kernel through go-fuse.
//
// A single stateless node type backs every inode. Each request is turned
// back into the node's absolute path and answered by the dispatcher, so
// path classification lives in exactly one place. Write access is refused
// with EROFS.
package mount
