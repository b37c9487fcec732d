// Package fsx holds the filesystem primitives used when rebuilding the
// output tree: atomic writes, metadata-preserving copies and directory
// creation that is safe to call from several workers at once.
package fsx
