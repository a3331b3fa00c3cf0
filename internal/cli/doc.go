// Package cli wires together the Cobra command tree for the githuntr binary.
//
// It defines the root command and its subcommands (scan, config, version),
// binds flags, merges configuration, drives the scan coordinator, and maps
// outcomes to exit codes: 0 on success, 1 on invalid patterns or any scan
// failure.
package cli
