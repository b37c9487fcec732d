// Package pipeline rebuilds a source tree under an output root with
// accession numbers removed.
//
// Destinations are planned sequentially, in discovery order, before any file
// is written: each file lands in <output>/<parent>/<name>, where <parent> is
// the name of the directory directly containing the source file. Deeper
// nesting is not reproduced. When two sources map to the same destination the
// later one fails with a [CollisionError] instead of overwriting the first.
//
// Files are processed independently. A failure is recorded on that file's
// report item and the run continues with the rest.
package pipeline
