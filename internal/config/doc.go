// Package config loads and merges abifredact configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (ABIFREDACT_PATTERN, ABIFREDACT_WORKERS, etc.),
//     including values from a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/abifredact/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], then [Config.ForRun] to bind it to
// a source and output directory as an immutable [Run].
package config
