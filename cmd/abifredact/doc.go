// Abifredact is a CLI for removing accession numbers from ABIF (.ab1)
// sequencing files before they are shared.
//
// It mirrors a source tree into an output directory, strips the accession
// number from each target file name, blanks the same number inside the file,
// and copies every other file unchanged. Exit codes are deterministic so
// batch jobs can tell clean runs from partial ones.
//
// Usage:
//
//	abifredact run <source> <output>     # write the redacted tree
//	abifredact scan <source> [output]    # show planned destinations only
//	abifredact config init               # write a default config file
//	abifredact config set workers 4      # change one setting
package main
