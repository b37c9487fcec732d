// Package cli wires together the Cobra command tree for the abifredact binary.
//
// It defines the root command and its subcommands (run, scan, config,
// version), binds flags, reads configuration, drives discovery and the
// redaction pipeline, and returns deterministic exit codes:
//
//	0  every target redacted
//	1  at least one target written without redaction
//	2  usage or configuration error
//	3  at least one file failed
//	4  the source tree could not be read
package cli
